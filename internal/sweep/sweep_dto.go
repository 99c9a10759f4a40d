package sweep

type RunSweepRequest struct {
	AsOf string `json:"as_of"`
}

type RunSweepResponse struct {
	AsOf string `json:"as_of"`
	Result
}
