package models

import "time"

// Complaint is the stored representation of a denuncia. FotoPath is the
// internal storage key and is never serialized to clients; the public shape
// carries a derived URL instead.
type Complaint struct {
	ID           int64
	Correo       string
	Descripcion  string
	UbicacionLat float64
	UbicacionLng float64
	FotoPath     string
	Fecha        time.Time
}

// Ubicacion is the nested coordinate pair in the public shape
type Ubicacion struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PublicDenuncia is the client-facing shape of a complaint
type PublicDenuncia struct {
	ID          int64     `json:"id"`
	Correo      string    `json:"correo"`
	Descripcion string    `json:"descripcion"`
	Fecha       time.Time `json:"fecha"`
	FotoURL     string    `json:"foto_url"`
	Ubicacion   Ubicacion `json:"ubicacion"`
}

// CreateDenunciaResponse is returned on successful creation
type CreateDenunciaResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
	FotoURL string `json:"foto_url"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	User     string `json:"user" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned on successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ErrorResponse is the common error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the common message body
type MessageResponse struct {
	Message string `json:"message"`
}

// BroadcastMessage wraps a payload broadcast to websocket listeners
type BroadcastMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status           string `json:"status"`
	Service          string `json:"service"`
	Timestamp        string `json:"timestamp"`
	ConnectedClients int    `json:"connected_clients"`
	LastBroadcastID  int64  `json:"last_broadcast_id"`
}
