package mapping

import (
	"strings"

	"github.com/quickfixgo/quickfix"
)

// FieldParser converts one raw field value into a typed cell. Parsers get
// the whole message so they can consult other fields if needed.
type FieldParser func(msg *quickfix.Message, tag quickfix.Tag, rawValue string) (any, error)

// ParserRegistry resolves the parser names used in mapping documents. All
// known parsers are registered here at construction; a configured name that
// is not registered fails engine startup.
type ParserRegistry struct {
	parsers map[string]FieldParser
}

func NewParserRegistry() *ParserRegistry {
	r := &ParserRegistry{parsers: make(map[string]FieldParser)}
	r.Register("remove_slash", removeSlashParser)
	return r
}

func (r *ParserRegistry) Register(name string, parser FieldParser) {
	r.parsers[name] = parser
}

func (r *ParserRegistry) Resolve(name string) (FieldParser, bool) {
	parser, ok := r.parsers[name]
	return parser, ok
}

// removeSlashParser strips slashes from a field value, e.g. a currency pair
// symbol EUR/USD -> EURUSD.
func removeSlashParser(_ *quickfix.Message, _ quickfix.Tag, rawValue string) (any, error) {
	return strings.ReplaceAll(rawValue, "/", ""), nil
}
