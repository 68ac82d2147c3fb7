package services

import (
	"go.uber.org/zap"

	"github.com/qianlnk/wolfgrid/models"
)

// 查询失败时使用的回合数，由服务端判定是否过期
const fallbackTurn = 0

// TurnQuery 尽力而为的当前回合查询
type TurnQuery struct {
	api     *APIClient
	session *Session
	logger  *zap.Logger
}

// NewTurnQuery 创建回合查询
func NewTurnQuery(api *APIClient, session *Session, logger *zap.Logger) *TurnQuery {
	return &TurnQuery{
		api:     api,
		session: session,
		logger:  orNop(logger).Named("tour"),
	}
}

// Current 返回服务端当前回合，失败时静默降级为 0
func (q *TurnQuery) Current() int {
	var resp models.TurnResponse
	if err := q.api.call("tour", "GET", "/tour", nil, &resp); err != nil {
		q.logger.Debug("回合查询失败，使用默认值",
			zap.Int("fallback", fallbackTurn),
			zap.Bool("timeout", IsTimeout(err)),
			zap.Error(err))
		return fallbackTurn
	}
	q.session.observeTurn(resp.Turn)
	return resp.Turn
}
