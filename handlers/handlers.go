package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"denuncias-service/auth"
	"denuncias-service/config"
	"denuncias-service/database"
	"denuncias-service/email"
	"denuncias-service/models"
	"denuncias-service/storage"
	ws "denuncias-service/websocket"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Handlers handles HTTP requests for the denuncias service
type Handlers struct {
	complaints    *database.ComplaintsService
	photos        *storage.PhotoStore
	auth          *auth.Service
	notifier      *email.Sender
	hub           *ws.Hub
	baseURL       string
	maxPhotoBytes int64
}

// NewHandlers creates a new handlers instance. auth and notifier may be nil
// when login or email confirmation is not configured.
func NewHandlers(complaints *database.ComplaintsService, photos *storage.PhotoStore,
	authService *auth.Service, notifier *email.Sender, hub *ws.Hub, cfg *config.Config) *Handlers {
	return &Handlers{
		complaints:    complaints,
		photos:        photos,
		auth:          authService,
		notifier:      notifier,
		hub:           hub,
		baseURL:       strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxPhotoBytes: cfg.MaxPhotoBytes,
	}
}

// fotoURL derives the public photo URL from a storage key
func (h *Handlers) fotoURL(key string) string {
	return h.baseURL + "/uploads/" + key
}

// toPublic is the single row-to-public-shape transformation used by every
// outbound path, so list, detail and broadcasts stay identical.
func (h *Handlers) toPublic(c models.Complaint) models.PublicDenuncia {
	return models.PublicDenuncia{
		ID:          c.ID,
		Correo:      c.Correo,
		Descripcion: c.Descripcion,
		Fecha:       c.Fecha,
		FotoURL:     h.fotoURL(c.FotoPath),
		Ubicacion: models.Ubicacion{
			Lat: c.UbicacionLat,
			Lng: c.UbicacionLng,
		},
	}
}

// CreateDenuncia handles the multipart denuncia submission.
// All field validation runs before the photo is written, so a failed insert
// is the only way to leave an orphaned file behind.
func (h *Handlers) CreateDenuncia(c *gin.Context) {
	file, err := c.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing photo field 'foto'"})
		return
	}

	correo := strings.TrimSpace(c.PostForm("correo"))
	descripcion := strings.TrimSpace(c.PostForm("descripcion"))
	latRaw := strings.TrimSpace(c.PostForm("ubicacion_lat"))
	lngRaw := strings.TrimSpace(c.PostForm("ubicacion_lng"))
	if correo == "" || descripcion == "" || latRaw == "" || lngRaw == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing required fields (correo, descripcion, ubicacion_lat, ubicacion_lng)"})
		return
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lng, lngErr := strconv.ParseFloat(lngRaw, 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "ubicacion_lat and ubicacion_lng must be numeric"})
		return
	}

	if file.Size > h.maxPhotoBytes {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("photo too large (max %d bytes)", h.maxPhotoBytes)})
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Errorf("Failed to open uploaded photo: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read photo"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		log.Errorf("Failed to read uploaded photo: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read photo"})
		return
	}

	key, err := h.photos.Save(data, file.Filename)
	if err != nil {
		log.Errorf("Failed to store photo: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store photo"})
		return
	}

	complaint := models.Complaint{
		Correo:       correo,
		Descripcion:  descripcion,
		UbicacionLat: lat,
		UbicacionLng: lng,
		FotoPath:     key,
	}
	if err := h.complaints.Insert(c.Request.Context(), &complaint); err != nil {
		// The stored photo is orphaned here; accepted and logged, not reconciled.
		log.Errorf("Failed to insert denuncia (orphaned photo %s): %v", key, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save denuncia"})
		return
	}

	public := h.toPublic(complaint)
	if h.hub != nil {
		h.hub.BroadcastDenuncia(public)
	}
	if h.notifier != nil {
		go func() {
			if err := h.notifier.SendComplaintConfirmation(complaint.Correo, complaint.ID, public.FotoURL); err != nil {
				log.Warnf("Failed to send confirmation email for denuncia %d: %v", complaint.ID, err)
			}
		}()
	}

	c.JSON(http.StatusCreated, models.CreateDenunciaResponse{
		Message: "denuncia created successfully",
		ID:      complaint.ID,
		FotoURL: public.FotoURL,
	})
}

// ListDenuncias returns all denuncias, newest first
func (h *Handlers) ListDenuncias(c *gin.Context) {
	complaints, err := h.complaints.ListAll(c.Request.Context())
	if err != nil {
		log.Errorf("Failed to list denuncias: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list denuncias"})
		return
	}

	public := make([]models.PublicDenuncia, 0, len(complaints))
	for _, complaint := range complaints {
		public = append(public, h.toPublic(complaint))
	}
	c.JSON(http.StatusOK, public)
}

// GetDenuncia returns a single denuncia by id
func (h *Handlers) GetDenuncia(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid id parameter"})
		return
	}

	complaint, err := h.complaints.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrComplaintNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: fmt.Sprintf("denuncia with id %d not found", id)})
			return
		}
		log.Errorf("Failed to get denuncia %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get denuncia"})
		return
	}

	c.JSON(http.StatusOK, h.toPublic(*complaint))
}

// GetPhoto serves the raw photo bytes for a stored key
func (h *Handlers) GetPhoto(c *gin.Context) {
	filename := c.Param("filename")
	data, err := h.photos.Read(filename)
	if err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "photo not found"})
			return
		}
		log.Errorf("Failed to read photo %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to retrieve photo"})
		return
	}

	contentType := storage.DetectImageType(data)
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, contentType, data)
}

// Login authenticates the fixed credential pair and issues a bearer token
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if h.auth == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "login is not configured"})
		return
	}

	token, err := h.auth.Login(req.User, req.Password)
	if err != nil {
		log.Warnf("Failed login attempt for user %q from %s", req.User, c.ClientIP())
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.auth.TokenTTL().Seconds()),
	})
}

// HealthCheck returns the service health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	connectedClients, lastBroadcastID := h.hub.GetStats()
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		Service:          "denuncias-service",
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		ConnectedClients: connectedClients,
		LastBroadcastID:  lastBroadcastID,
	})
}
