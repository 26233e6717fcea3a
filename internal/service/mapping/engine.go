// Package mapping implements the configuration-driven FIX decoder: a
// declarative document maps message types to destination tables and
// per-column field tags, with optional named parsers for fields that need
// more than a scalar cast.
package mapping

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kgsd/fx-md-adapter/internal/constant"
	"github.com/kgsd/fx-md-adapter/internal/entity"
	"github.com/quickfixgo/quickfix"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Engine decodes inbound messages into single-row batches according to the
// loaded mapping table. Mappings are immutable after construction; Decode is
// safe for concurrent use.
type Engine struct {
	mappings map[string]entity.MessageMapping
	parsers  map[string]FieldParser
}

// LoadMappingConfig reads the mapping document. A missing or malformed
// document is fatal to the caller: running with no mapping table is
// meaningless.
func LoadMappingConfig(path string) (*entity.MappingConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping config %s: %w", path, err)
	}

	var cfg entity.MappingConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse mapping config %s: %w", path, err)
	}

	return &cfg, nil
}

// NewEngine indexes the mapping config by message type and resolves every
// configured parser name against the registry. Unknown parser names and
// unknown column types fail construction so misconfiguration surfaces at
// startup, not on the first matching message.
func NewEngine(cfg *entity.MappingConfig, registry *ParserRegistry) (*Engine, error) {
	engine := &Engine{
		mappings: make(map[string]entity.MessageMapping, len(cfg.MessageMappings)),
		parsers:  make(map[string]FieldParser),
	}

	for _, m := range cfg.MessageMappings {
		for _, col := range m.Columns {
			if !col.Type.Valid() {
				return nil, fmt.Errorf("mapping %s column %s: unknown column type %q", m.MsgType, col.Name, col.Type)
			}
			if col.Parser == "" {
				continue
			}
			parser, ok := registry.Resolve(col.Parser)
			if !ok {
				return nil, fmt.Errorf("mapping %s column %s: unregistered parser %q", m.MsgType, col.Name, col.Parser)
			}
			engine.parsers[col.Parser] = parser
		}
		engine.mappings[m.MsgType] = m
	}

	return engine, nil
}

// Decode produces a one-row batch for msg, or nil when no mapping is
// configured for its message type. A missing field or failed cast aborts
// only this message's row.
func (e *Engine) Decode(msg *quickfix.Message) (*entity.RowBatch, error) {
	msgType, rejectErr := msg.Header.GetString(constant.TagMsgType)
	if rejectErr != nil {
		return nil, fmt.Errorf("message missing MsgType: %v", rejectErr)
	}

	m, ok := e.mappings[msgType]
	if !ok {
		return nil, nil
	}

	columns := make([]string, 0, len(m.Columns))
	row := make(entity.Row, 0, len(m.Columns))

	for _, col := range m.Columns {
		raw, rejectErr := msg.Body.GetString(quickfix.Tag(col.Tag))
		if rejectErr != nil {
			return nil, fmt.Errorf("message type %s: field %d (%s) not found", msgType, col.Tag, col.Name)
		}

		var value any
		var err error
		if col.Parser != "" {
			value, err = e.parsers[col.Parser](msg, quickfix.Tag(col.Tag), raw)
		} else {
			value, err = castValue(raw, col.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("message type %s: column %s: %w", msgType, col.Name, err)
		}

		columns = append(columns, col.Name)
		row = append(row, value)
	}

	logrus.Debugf("decoded message type %s into row for table %s", msgType, m.Table)

	return &entity.RowBatch{
		Table:   m.Table,
		Columns: columns,
		Rows:    []entity.Row{row},
	}, nil
}

func castValue(raw string, columnType entity.ColumnType) (any, error) {
	switch columnType {
	case entity.ColumnTypeInt:
		return strconv.Atoi(raw)
	case entity.ColumnTypeLong:
		return strconv.ParseInt(raw, 10, 64)
	case entity.ColumnTypeDouble:
		return strconv.ParseFloat(raw, 64)
	case entity.ColumnTypeString:
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown column type %q", columnType)
	}
}
