// Command llmcost counts tokens and estimates cost for LLM API calls,
// entirely offline: no network access, no API keys.
package main

import "os"

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		return exitCodeFor(err)
	}
	return 0
}
