package pipeline

import "github.com/stackforge/stackforge/internal/config"

// Packages derives the runtime and development npm package lists from the
// datastore choice and feature flags. Each list maps to exactly one
// package-manager invocation.
func Packages(cfg *config.Config) (runtime, dev []string) {
	runtime = []string{"express", "dotenv", "cors", "helmet", "morgan"}

	if cfg.Template == config.TemplateDynamic {
		runtime = append(runtime, "ejs")
	}

	switch cfg.Datastore {
	case config.DatastoreMySQL:
		runtime = append(runtime, "sequelize", "mysql2")
	case config.DatastorePostgres:
		runtime = append(runtime, "sequelize", "pg", "pg-hstore")
	case config.DatastoreMongo:
		runtime = append(runtime, "mongoose")
	}

	if cfg.Features.Auth {
		runtime = append(runtime, "jsonwebtoken", "bcryptjs")
	}
	if cfg.Features.APIDocs {
		runtime = append(runtime, "swagger-jsdoc", "swagger-ui-express")
	}

	dev = []string{"nodemon"}
	if cfg.Features.Lint {
		dev = append(dev, "eslint", "prettier")
	}
	if cfg.Features.Testing {
		dev = append(dev, "jest", "supertest")
	}

	return runtime, dev
}
