// Package schemas embeds the JSON Schema files and registers them with the
// config and audit packages on import. CLI entry points should import this
// package with a blank identifier:
// import _ "github.com/SuyashParmar/network-auditor/schemas"
package schemas

import (
	"embed"

	"github.com/SuyashParmar/network-auditor/internal/audit"
	"github.com/SuyashParmar/network-auditor/internal/config"
)

//go:embed netaudit-v1.schema.json report-v1.schema.json
var fs embed.FS

func init() {
	config.SetSchema(mustRead("netaudit-v1.schema.json"))
	audit.SetReportSchema(mustRead("report-v1.schema.json"))
}

func mustRead(name string) []byte {
	data, err := fs.ReadFile(name)
	if err != nil {
		panic("schemas: failed to read embedded " + name + ": " + err.Error())
	}
	return data
}
