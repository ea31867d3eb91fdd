package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CoursePurchases = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "course_purchases_total",
			Help: "Number of successful course purchases",
		},
	)

	TopUpsConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "topups_confirmed_total",
			Help: "Number of verified points top-ups",
		},
	)

	TopUpsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "topups_rejected_total",
			Help: "Number of top-up confirmations rejected by signature check",
		},
	)

	QuestionSetsProvisioned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "question_sets_provisioned_total",
			Help: "Number of course question banks generated",
		},
	)
)

func Register() {
	prometheus.MustRegister(CoursePurchases, TopUpsConfirmed, TopUpsRejected, QuestionSetsProvisioned)
}
