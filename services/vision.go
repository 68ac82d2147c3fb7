package services

import (
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/qianlnk/wolfgrid/models"
)

// Vision 轮询玩家的可见窗口
type Vision struct {
	api     *APIClient
	session *Session
	logger  *zap.Logger
}

// NewVision 创建视野协议
func NewVision(api *APIClient, session *Session, logger *zap.Logger) *Vision {
	return &Vision{
		api:     api,
		session: session,
		logger:  orNop(logger).Named("vision"),
	}
}

// Fetch 获取一次完整快照，并返回失败原因
func (v *Vision) Fetch() (*models.VisionSnapshot, error) {
	id, ok := v.session.Identity()
	if !ok {
		return nil, ErrNotRegistered
	}

	var resp models.VisionResponse
	err := v.api.call("vision", "GET", "/vision/"+url.PathEscape(id.PlayerID), nil, &resp)
	v.session.record(err)
	if err != nil {
		return nil, err
	}
	snap, err := resp.Snapshot()
	if err != nil {
		appErr := &ApplicationError{Op: "vision", Status: 200, Message: "vision illisible", Err: err}
		v.session.record(appErr)
		return nil, appErr
	}

	v.session.observeTurn(snap.Turn)
	v.reconcile(snap.Position)
	return &snap, nil
}

// Poll 获取快照；未注册或失败时返回 nil，失败会记录日志
func (v *Vision) Poll() *models.VisionSnapshot {
	snap, err := v.Fetch()
	if err != nil {
		if errors.Is(err, ErrNotRegistered) {
			v.logger.Debug("未注册，跳过视野轮询")
		} else {
			v.logger.Warn("视野轮询失败",
				zap.Stringer("outcome", Classify(err)),
				zap.Error(err))
		}
		return nil
	}
	return snap
}

// reconcile 服务端给出坐标时以服务端为准，修正丢失响应造成的偏差
func (v *Vision) reconcile(server *models.Position) {
	if server == nil {
		return
	}
	local, ok := v.session.Position()
	if !ok || local == *server {
		return
	}
	v.logger.Info("本地位置与服务端不一致，已修正",
		zap.Stringer("local", local),
		zap.Stringer("server", *server))
	v.session.setPosition(*server)
}
