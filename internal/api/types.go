package api

// QuantizeRequest is the body of POST /v1/quantize. All rows share the
// precision and must share a symbol count.
type QuantizeRequest struct {
	Precision int         `json:"precision"`
	PMF       [][]float64 `json:"pmf"`
}

// QuantizeResponse carries one CDF row per input row. Each row has one more
// entry than its PMF: a leading 0 and a trailing 1<<precision.
type QuantizeResponse struct {
	ID        string     `json:"id"`
	Object    string     `json:"object"`
	Precision int        `json:"precision"`
	CDF       [][]uint32 `json:"cdf"`
	Cached    bool       `json:"cached"`
}

// ResponseError is the error envelope returned for failed requests.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}
