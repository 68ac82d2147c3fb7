package services

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput      = errors.New("identifiant invalide : 3 à 20 caractères alphanumériques")
	ErrNotRegistered     = errors.New("joueur non inscrit")
	ErrAlreadyRegistered = errors.New("joueur déjà inscrit")
	ErrEliminated        = errors.New("vous avez été éliminé")
	ErrGameOver          = errors.New("la partie est terminée")
	ErrUnknownCommand    = errors.New("commande inconnue")
)

// 可以直接展示给玩家的本地错误
var userFacing = []error{
	ErrInvalidInput,
	ErrNotRegistered,
	ErrAlreadyRegistered,
	ErrEliminated,
	ErrGameOver,
	ErrUnknownCommand,
}

// ApplicationError 服务端返回的结构化拒绝
type ApplicationError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *ApplicationError) Error() string {
	return e.Message
}

func (e *ApplicationError) Unwrap() error {
	return e.Err
}

// NetworkError 传输层失败：超时、连接被拒、DNS 等
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Outcome 一次网络调用的结果分类
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeApplicationError
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeApplicationError:
		return "application-error"
	case OutcomeTransportError:
		return "transport-error"
	default:
		return "none"
	}
}

// Classify 把网络调用返回的 error 归类
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return OutcomeTransportError
	}
	return OutcomeApplicationError
}

// UserMessage 转换为给玩家看的简短文字，不暴露底层传输错误
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		if appErr.Message != "" {
			return appErr.Message
		}
		return http.StatusText(appErr.Status)
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "serveur injoignable, réessayez"
	}
	for _, sentinel := range userFacing {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "erreur inattendue"
}
