package metricskey

import "github.com/effective-security/metrics"

// Perf
var (
	// PerfSignatureOperation is perf metric
	PerfSignatureOperation = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_signature",
		Help:         "perf_signature provides the sample metrics of signature operations",
		RequiredTags: []string{"algo", "action"},
	}

	// PerfKeyLoad is perf metric
	PerfKeyLoad = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_key_load",
		Help:         "perf_key_load provides the sample metrics of key parsing",
		RequiredTags: []string{"source"},
	}
)

// Metrics returns slice of metrics from this repo
var Metrics = []*metrics.Describe{
	&PerfSignatureOperation,
	&PerfKeyLoad,
}
