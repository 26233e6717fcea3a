package constant

const (
	QuoteTableName = "fx_forward_quotes"
)

// QuoteColumns is the declared shape of the forward quote sink table. Every
// decoded snapshot row must match it exactly, in order.
var QuoteColumns = []string{
	"time",
	"rcv_time",
	"req_id",
	"sym",
	"symbol_sfx",
	"no_md_entries",
	"side",
	"price",
	"size",
	"entry_date",
	"quote_condition",
	"settl_date",
	"forward_points",
	"pip",
	"tenor_value",
	"spot_v_date",
	"origin",
}
