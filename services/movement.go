package services

import (
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/qianlnk/wolfgrid/models"
)

// Movement 提交移动并把结果同步到会话
type Movement struct {
	api     *APIClient
	session *Session
	turns   *TurnQuery
	logger  *zap.Logger
}

// NewMovement 创建移动协议
func NewMovement(api *APIClient, session *Session, turns *TurnQuery, logger *zap.Logger) *Movement {
	return &Movement{
		api:     api,
		session: session,
		turns:   turns,
		logger:  orNop(logger).Named("deplacement"),
	}
}

// Step 从当前位置朝一个方向移动一格
func (m *Movement) Step(dir models.Direction) (models.Position, error) {
	pos, ok := m.session.Position()
	if !ok {
		return models.Position{}, ErrNotRegistered
	}
	return m.Move(pos.Add(dir))
}

// Move 提交目标位置。只有服务端返回 200 才更新本地位置；
// 被拒绝或网络失败时位置保持不变。
func (m *Movement) Move(target models.Position) (models.Position, error) {
	id, ok := m.session.Identity()
	if !ok {
		return models.Position{}, ErrNotRegistered
	}
	before, _ := m.session.Position()

	// 回合查询必须先于提交
	turn := m.turns.Current()

	var resp models.MoveResponse
	err := m.api.call("deplacement", "POST", "/deplacement/"+url.PathEscape(id.PlayerID),
		models.MoveRequest{X: target.X, Y: target.Y, Turn: turn}, &resp)
	if errors.Is(err, errUndecodableBody) {
		// 200 即已接受，回显无法解析时不做比对
		m.logger.Warn("移动已接受，但回显无法解析",
			zap.Stringer("target", target),
			zap.Error(err))
		resp, err = models.MoveResponse{}, nil
	}
	m.session.record(err)
	if err != nil {
		m.logger.Info("移动未被确认",
			zap.Stringer("from", before),
			zap.Stringer("to", target),
			zap.Int("tour", turn),
			zap.Stringer("outcome", Classify(err)),
			zap.Error(err))
		return before, err
	}

	if resp.X != nil && resp.Y != nil {
		if echoed := (models.Position{X: *resp.X, Y: *resp.Y}); echoed != target {
			m.logger.Warn("服务端回显位置与目标不一致",
				zap.Stringer("target", target),
				zap.Stringer("echoed", echoed))
		}
	}

	m.session.setPosition(target)
	m.logger.Debug("移动成功", zap.Stringer("position", target), zap.Int("tour", turn))
	return target, nil
}
