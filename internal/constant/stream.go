package constant

const (
	QuoteStreamName        = "fx_quotes"
	QuoteStreamSubjectAll  = "fx_quotes.*"
	QuoteStreamSubjectRows = "fx_quotes.rows"
)
