package services

import (
	"github.com/rs/zerolog/log"

	"notion-cms/pkg/notion"
)

// LogWarnings returns a sink that logs each compile warning at warn level,
// tagged with the source it came from.
func LogWarnings(source string) notion.WarningFunc {
	logger := log.With().Str("source", source).Logger()
	return func(w notion.Warning) {
		event := logger.Warn().Str("code", string(w.Code))
		if w.BlockID != "" {
			event = event.Str("block_id", w.BlockID)
		}
		if w.BlockType != "" {
			event = event.Str("block_type", w.BlockType)
		}
		event.Msg(w.Message)
	}
}
