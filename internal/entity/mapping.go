package entity

type ColumnType string

const (
	ColumnTypeInt    ColumnType = "int"
	ColumnTypeLong   ColumnType = "long"
	ColumnTypeDouble ColumnType = "double"
	ColumnTypeString ColumnType = "string"
)

func (t ColumnType) Valid() bool {
	switch t {
	case ColumnTypeInt, ColumnTypeLong, ColumnTypeDouble, ColumnTypeString:
		return true
	}
	return false
}

type ColumnMapping struct {
	Name   string     `yaml:"name"`
	Tag    int        `yaml:"tag"`
	Type   ColumnType `yaml:"type"`
	Parser string     `yaml:"parser,omitempty"`
}

type MessageMapping struct {
	MsgType string          `yaml:"msg_type"`
	Table   string          `yaml:"table"`
	Columns []ColumnMapping `yaml:"columns"`
}

type MappingConfig struct {
	MessageMappings []MessageMapping `yaml:"message_mappings"`
}
