// Package metrics records TestHub client activity as Prometheus metrics.
//
// A Recorder implements apiclient.Observer, so every dispatch can be counted:
//
//	rec := metrics.NewRecorder()
//	d := apiclient.New(baseURL, apiclient.WithObserver(rec))
//	http.Handle("/metrics", rec.Handler())
//
// # Metrics
//
//   - testhub_client_requests_total: dispatches (labels: method, endpoint, status)
//   - testhub_client_request_duration_seconds: dispatch latency (labels: method, endpoint)
//   - testhub_client_errors_total: failed dispatches (labels: endpoint, code)
//   - testhub_agent_tasks_total: finished agent tasks (labels: status)
//   - testhub_agent_task_duration_seconds: agent task run time
//   - testhub_agent_heartbeats_total: heartbeat attempts (labels: result)
//   - testhub_agent_busy: 1 while the agent runs a task
//
// The status label is the HTTP status code, or "none" when no response
// arrived. Each Recorder owns its registry unless WithRegistry is given.
package metrics
