package database

import (
	"database/sql"
	"fmt"

	"github.com/apex/log"
)

// InitSchema creates the necessary database tables if they don't exist
func InitSchema(db *sql.DB) error {
	log.Info("Initializing denuncias database schema...")

	denunciasTableSQL := `
	CREATE TABLE IF NOT EXISTS denuncias(
		id INT NOT NULL AUTO_INCREMENT,
		correo VARCHAR(255) NOT NULL,
		descripcion TEXT NOT NULL,
		ubicacion_lat DOUBLE NOT NULL,
		ubicacion_lng DOUBLE NOT NULL,
		foto_path VARCHAR(255) NOT NULL,
		fecha TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		INDEX fecha_index (fecha)
	)`

	if _, err := db.Exec(denunciasTableSQL); err != nil {
		return fmt.Errorf("failed to create denuncias table: %w", err)
	}
	log.Info("Denuncias table created/verified")

	log.Info("Denuncias database schema initialization completed")
	return nil
}
