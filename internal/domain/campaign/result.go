package campaign

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePartial Outcome = "partial"
	OutcomeFailure Outcome = "failure"
)

type Failure struct {
	ClientID   string  `json:"clientId"`
	ClientName string  `json:"clientName"`
	Channel    Channel `json:"channel"`
	Reason     string  `json:"reason"`
}

type Result struct {
	Outcome      Outcome   `json:"outcome"`
	SuccessCount int       `json:"successCount"`
	ErrorCount   int       `json:"errorCount"`
	Failures     []Failure `json:"failures"`
}

// Attempt é o resultado de uma Delivery; Err nil significa enviado.
type Attempt struct {
	Delivery Delivery
	Err      error
}

func Classify(success, errors int) Outcome {
	switch {
	case success > 0 && errors == 0:
		return OutcomeSuccess
	case success > 0:
		return OutcomePartial
	default:
		return OutcomeFailure
	}
}

// Aggregate consolida as tentativas na ordem recebida.
func Aggregate(attempts []Attempt) Result {
	res := Result{Failures: []Failure{}}
	for _, a := range attempts {
		if a.Err == nil {
			res.SuccessCount++
			continue
		}
		res.ErrorCount++
		res.Failures = append(res.Failures, Failure{
			ClientID:   a.Delivery.Client.ID,
			ClientName: a.Delivery.Client.Name,
			Channel:    a.Delivery.Channel,
			Reason:     a.Err.Error(),
		})
	}
	res.Outcome = Classify(res.SuccessCount, res.ErrorCount)
	return res
}
