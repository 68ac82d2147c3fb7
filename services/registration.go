package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/qianlnk/wolfgrid/models"
)

// 与服务端 /inscription 的绑定规则一致
const loginRule = "required,min=3,max=20,alphanum"

// Registration 注册握手，进程内只允许成功一次
type Registration struct {
	api      *APIClient
	session  *Session
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRegistration 创建注册协议
func NewRegistration(api *APIClient, session *Session, logger *zap.Logger) *Registration {
	return &Registration{
		api:      api,
		session:  session,
		validate: validator.New(),
		logger:   orNop(logger).Named("inscription"),
	}
}

// ValidateLogin 本地校验登录名，失败时不发起网络请求
func (r *Registration) ValidateLogin(login string) error {
	if err := r.validate.Var(login, loginRule); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidInput, login)
	}
	return nil
}

// Register 向服务端注册，成功后建立身份与初始位置
func (r *Registration) Register(login string, role models.Role) (models.Identity, models.Position, error) {
	if r.session.Registered() {
		return models.Identity{}, models.Position{}, ErrAlreadyRegistered
	}
	if err := r.ValidateLogin(login); err != nil {
		r.logger.Info("登录名不合法", zap.String("login", login))
		return models.Identity{}, models.Position{}, err
	}
	if !role.Valid() {
		return models.Identity{}, models.Position{}, fmt.Errorf("%w: rôle %v", ErrInvalidInput, role)
	}

	var resp models.RegisterResponse
	err := r.api.call("inscription", "POST", "/inscription",
		models.RegisterRequest{Login: login, Role: role}, &resp)
	r.session.record(err)
	if err != nil {
		r.logger.Warn("注册失败",
			zap.String("login", login),
			zap.Stringer("outcome", Classify(err)),
			zap.Error(err))
		return models.Identity{}, models.Position{}, err
	}
	if resp.PlayerID == "" {
		err := &ApplicationError{Op: "inscription", Status: 200, Message: "réponse d'inscription sans identifiant"}
		r.session.record(err)
		return models.Identity{}, models.Position{}, err
	}

	id := models.Identity{PlayerID: resp.PlayerID, Login: login, Role: role}
	pos := models.Position{X: resp.X, Y: resp.Y}
	if err := r.session.establish(id, pos); err != nil {
		return models.Identity{}, models.Position{}, err
	}
	r.logger.Info("注册成功",
		zap.String("player_id", id.PlayerID),
		zap.Stringer("role", role),
		zap.Stringer("position", pos))
	return id, pos, nil
}
