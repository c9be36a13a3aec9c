package seeds

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrportal_backend/internals/configs"
	organization "hrportal_backend/internals/seeds/organization"
)

const defaultOrganizationSeed = "internals/seeds/organization/data_organization.json"

// RunAllSeeds: dijalankan saat SEED=true.
func RunAllSeeds(db *gorm.DB, logger *zap.Logger) error {
	//* Organization (rooms, teams, employees, leaves)
	path := configs.GetEnv("SEED_ORGANIZATION_FILE", defaultOrganizationSeed)
	return organization.SeedOrganizationFromJSON(db, path, logger)
}
