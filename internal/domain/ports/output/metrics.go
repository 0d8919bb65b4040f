package ports

import "time"

type MetricsProvider interface {
	IncrementHTTPRequests(method, path, status string)
	RecordHTTPRequestDuration(method, path, status string, duration time.Duration)

	IncrementGRPCRequests(method, status string)

	IncrementDatabaseQueries(queryType string, success bool)
	RecordDatabaseQueryDuration(queryType string, duration time.Duration)

	IncrementPostOperations(operation string, success bool)
	IncrementTagOperations(operation string, success bool)
	IncrementImageOperations(operation string, success bool)
	IncrementSlugCollisions()

	SetServiceHealth(healthy bool)
}
