package cli

import (
	"strconv"

	"github.com/calvinalkan/bobbot/internal/config"
)

func execPrintConfig(o *IO, cfg *config.Config) {
	o.Println("effective_cwd=" + cfg.EffectiveCwd)
	o.Println("data_file=" + cfg.DataFileAbs)
	o.Println("save=" + strconv.FormatBool(cfg.Save))

	if cfg.HistoryFileAbs != "" {
		o.Println("history_file=" + cfg.HistoryFileAbs)
	}

	o.Println("log_level=" + cfg.LogLevel)

	o.Println("")
	o.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			o.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			o.Println("project_config=" + cfg.Sources.Project)
		}
	}
}
