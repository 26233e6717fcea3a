package entity

import (
	"time"

	"github.com/guregu/null/v6"
)

// QuoteRecord is the read-back shape of one forward quote row in the
// relational sink.
type QuoteRecord struct {
	Time           time.Time `db:"time" json:"time"`
	RcvTime        time.Time `db:"rcv_time" json:"rcv_time"`
	ReqID          string    `db:"req_id" json:"req_id"`
	Sym            string    `db:"sym" json:"sym"`
	SymbolSfx      string    `db:"symbol_sfx" json:"symbol_sfx"`
	NoMDEntries    int32     `db:"no_md_entries" json:"no_md_entries"`
	Side           string    `db:"side" json:"side"`
	Price          float64   `db:"price" json:"price"`
	Size           float64   `db:"size" json:"size"`
	EntryDate      time.Time `db:"entry_date" json:"entry_date"`
	QuoteCondition bool      `db:"quote_condition" json:"quote_condition"`
	SettlDate      null.Time `db:"settl_date" json:"settl_date"`
	ForwardPoints  float64   `db:"forward_points" json:"forward_points"`
	Pip            string    `db:"pip" json:"pip"`
	TenorValue     string    `db:"tenor_value" json:"tenor_value"`
	SpotVDate      string    `db:"spot_v_date" json:"spot_v_date"`
	Origin         string    `db:"origin" json:"origin"`
}

func (q QuoteRecord) TableName() string {
	return "fx_forward_quotes"
}
