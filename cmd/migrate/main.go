// Runner de migraciones: aplica los archivos de migrations/ con goose.
//
//	go run ./cmd/migrate [-dir migrations] [comando goose, default "up"]
package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/tu-usuario/inventario-lotes/pkg/config"
)

func main() {
	var dir string
	flag.StringVar(&dir, "dir", "migrations", "directorio con archivos de migración")
	flag.Parse()

	command := "up"
	var rest []string
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
		rest = args[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("migrate: cargar configuración: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatalf("migrate: abrir conexión: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("migrate: cerrar conexión: %v", err)
		}
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("migrate: dialecto: %v", err)
	}

	if err := goose.Run(command, db, dir, rest...); err != nil {
		log.Fatalf("migrate: goose %s: %v", command, err)
	}
}
