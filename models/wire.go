package models

// RegisterRequest POST /inscription
type RegisterRequest struct {
	Login string `json:"login" binding:"required,min=3,max=20,alphanum"`
	Role  Role   `json:"role" binding:"required"`
}

// RegisterResponse 注册成功的返回
type RegisterResponse struct {
	PlayerID string `json:"player_id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// MoveRequest POST /deplacement/{player_id}
type MoveRequest struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Turn int `json:"tour"`
}

// MoveResponse 服务端可选地回显落点
type MoveResponse struct {
	X *int `json:"x,omitempty"`
	Y *int `json:"y,omitempty"`
}

// NearbyPlayerPayload joueurs_proches 的元素
type NearbyPlayerPayload struct {
	Role     Role `json:"role"`
	Distance *int `json:"distance,omitempty"`
}

// VisionResponse GET /vision/{player_id}
type VisionResponse struct {
	Turn          int                   `json:"tour_actuel"`
	TimeRemaining float64               `json:"temps_restant"`
	Map           Grid                  `json:"carte"`
	Nearby        []NearbyPlayerPayload `json:"joueurs_proches,omitempty"`
	Eliminated    bool                  `json:"elimine,omitempty"`
	GameStatus    GameStatus            `json:"statut_partie,omitempty"`
	PlayerStatus  PlayerStatus          `json:"statut_joueur,omitempty"`
	X             *int                  `json:"x,omitempty"`
	Y             *int                  `json:"y,omitempty"`
}

// TurnResponse GET /tour
type TurnResponse struct {
	Turn int `json:"tour_actuel"`
}

// ErrorResponse 所有非 200 响应的错误载荷
type ErrorResponse struct {
	Error string `json:"error"`
}
