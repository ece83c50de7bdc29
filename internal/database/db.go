package database

import (
	"log"

	"cartonnerie-backend/internal/config"
	"cartonnerie-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Connexion à la base impossible: %v", err)
	}

	// Migration Staff: advance_taken ajouté après coup, les anciennes lignes restent à NULL
	if DB.Migrator().HasTable(&models.Staff{}) {
		if DB.Migrator().HasColumn(&models.Staff{}, "advance_taken") {
			DB.Exec("UPDATE staffs SET advance_taken = 0 WHERE advance_taken IS NULL")
		}
	}

	err = DB.AutoMigrate(
		&models.Customer{},
		&models.Staff{},
		&models.RawMaterial{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Expense{},
		&models.ProductionLog{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erreur AutoMigrate: %v", err)
	}

	log.Println("Connexion base de données OK. Migration terminée.")
}
