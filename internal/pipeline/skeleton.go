package pipeline

import "github.com/stackforge/stackforge/internal/config"

// SkeletonDirs returns the fixed directory skeleton for a project, as
// root-relative paths in stable parent-first order. Child creation assumes
// the parent already exists, so the ordering here is load-bearing.
func SkeletonDirs(cfg *config.Config) []string {
	dirs := []string{
		"source",
		"source/services",
		"source/routes",
		"source/middleware",
		"source/utilities",
		"source/config",
		"assets",
		"assets/styles",
		"assets/scripts",
		"assets/media",
		"assets/uploads",
		"tests",
	}

	switch cfg.Template {
	case config.TemplateDynamic:
		dirs = append(dirs, "views", "views/partials")
	case config.TemplateStatic:
		dirs = append(dirs, "public")
	}

	return dirs
}
