package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/vsinha/agrierp/pkg/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.OutputFormat, convey.ShouldEqual, "text")
				convey.So(cfg.EvaluationWorkers, convey.ShouldEqual, runtime.NumCPU())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("AGRIERP_LOG_LEVEL", "debug")
			_ = os.Setenv("AGRIERP_DATA_DIR", "/srv/fleet")
			_ = os.Setenv("AGRIERP_EVALUATION_WORKERS", "3")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/fleet")
				convey.So(cfg.EvaluationWorkers, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := filepath.Join(t.TempDir(), "agrierp.yaml")
			yamlContent := `
log_format: json
equipment_file: /data/equipment.csv
plans_file: /data/plans.csv
output_format: json
evaluation_workers: 2
`
			_ = os.WriteFile(path, []byte(yamlContent), 0o600)

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.EquipmentFile, convey.ShouldEqual, "/data/equipment.csv")
				convey.So(cfg.OutputFormat, convey.ShouldEqual, "json")
				convey.So(cfg.EvaluationWorkers, convey.ShouldEqual, 2)
			})

			convey.Convey("And env vars take precedence over the file", func() {
				_ = os.Setenv("AGRIERP_OUTPUT_FORMAT", "text")
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx, path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OutputFormat, convey.ShouldEqual, "text")
			})
		})

		convey.Convey("When the file does not exist", func() {
			_, err := config.Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value is invalid", func() {
			_ = os.Setenv("AGRIERP_OUTPUT_FORMAT", "xlsx")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then loading succeeds and validation is left to the caller", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OutputFormat, convey.ShouldEqual, "xlsx")
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})

			convey.Convey("And an override applied before validation fixes it", func() {
				convey.So(err, convey.ShouldBeNil)
				cfg.OutputFormat = "text"
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}

func TestResolveFiles(t *testing.T) {
	convey.Convey("Given a config with a data dir", t, func() {
		cfg := config.New()
		cfg.DataDir = "/srv/fleet"

		convey.Convey("Then equipment and plans paths are derived from it", func() {
			convey.So(cfg.ResolveFiles(), convey.ShouldBeNil)
			convey.So(cfg.EquipmentFile, convey.ShouldEqual, filepath.Join("/srv/fleet", "equipment.csv"))
			convey.So(cfg.PlansFile, convey.ShouldEqual, filepath.Join("/srv/fleet", "plans.csv"))
		})

		convey.Convey("And explicit paths are kept", func() {
			cfg.PlansFile = "/tmp/other.csv"
			convey.So(cfg.ResolveFiles(), convey.ShouldBeNil)
			convey.So(cfg.PlansFile, convey.ShouldEqual, "/tmp/other.csv")
		})
	})

	convey.Convey("Given a config without any input paths", t, func() {
		err := config.New().ResolveFiles()

		convey.Convey("Then it is invalid", func() {
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"AGRIERP_CONFIG",
		"AGRIERP_LOG_LEVEL",
		"AGRIERP_LOG_FORMAT",
		"AGRIERP_DATA_DIR",
		"AGRIERP_OUTPUT_FORMAT",
		"AGRIERP_EVALUATION_WORKERS",
	} {
		_ = os.Unsetenv(key)
	}
}
