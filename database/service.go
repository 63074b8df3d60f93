package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"denuncias-service/models"
)

// ErrComplaintNotFound is returned when a denuncia id has no row
var ErrComplaintNotFound = errors.New("denuncia not found")

// ComplaintsService handles all denuncia database operations
type ComplaintsService struct {
	db *sql.DB
}

// NewComplaintsService creates a new complaints service instance
func NewComplaintsService(db *sql.DB) *ComplaintsService {
	return &ComplaintsService{db: db}
}

// Insert persists a new denuncia and fills in its assigned id and fecha.
// The timestamp is assigned here rather than by the column default so the
// caller can reshape the record without a follow-up read.
func (s *ComplaintsService) Insert(ctx context.Context, c *models.Complaint) error {
	if c.Fecha.IsZero() {
		c.Fecha = time.Now().UTC()
	}
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO denuncias (correo, descripcion, ubicacion_lat, ubicacion_lng, foto_path, fecha) VALUES (?, ?, ?, ?, ?, ?)",
		c.Correo, c.Descripcion, c.UbicacionLat, c.UbicacionLng, c.FotoPath, c.Fecha)
	if err != nil {
		return fmt.Errorf("failed to insert denuncia: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read denuncia id: %w", err)
	}
	c.ID = id
	return nil
}

// ListAll returns every denuncia ordered newest first
func (s *ComplaintsService) ListAll(ctx context.Context) ([]models.Complaint, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, correo, descripcion, ubicacion_lat, ubicacion_lng, foto_path, fecha FROM denuncias ORDER BY fecha DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query denuncias: %w", err)
	}
	defer rows.Close()

	complaints := []models.Complaint{}
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.Correo, &c.Descripcion, &c.UbicacionLat, &c.UbicacionLng, &c.FotoPath, &c.Fecha); err != nil {
			return nil, fmt.Errorf("failed to scan denuncia: %w", err)
		}
		complaints = append(complaints, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate denuncias: %w", err)
	}
	return complaints, nil
}

// Get returns a single denuncia by id
func (s *ComplaintsService) Get(ctx context.Context, id int64) (*models.Complaint, error) {
	var c models.Complaint
	err := s.db.QueryRowContext(ctx,
		"SELECT id, correo, descripcion, ubicacion_lat, ubicacion_lng, foto_path, fecha FROM denuncias WHERE id = ?",
		id).Scan(&c.ID, &c.Correo, &c.Descripcion, &c.UbicacionLat, &c.UbicacionLng, &c.FotoPath, &c.Fecha)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrComplaintNotFound
		}
		return nil, fmt.Errorf("failed to query denuncia: %w", err)
	}
	return &c, nil
}
