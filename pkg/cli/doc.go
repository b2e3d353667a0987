// Package cli provides the command-line interface for TestHub.
//
// Commands are cobra commands registered on a package-level root in the
// init function of the file that defines them:
//   - call: invoke any endpoint by qualified name (apitesting.*, uiautomation.*, agents.*)
//   - endpoints: list the endpoint table with methods, paths and timeouts
//   - dashboard: API-testing and UI-automation stats side by side
//   - history batch-delete: remove request-history records
//   - cases run, suites run: start UI-automation runs and wait for the result
//   - ai export-pdf: download an AI execution report
//   - agent run: register as an execution agent and process polled tasks
//   - config show, config init: inspect or create the layered configuration
//   - version, completion
//
// Every command except version, completion and config init resolves
// configuration through cliconfig before it runs. Results honour the global
// --json, --yaml and --query flags.
package cli
