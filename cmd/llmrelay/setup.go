package main

import (
	"github.com/relaypath/llmrelay/pkg/balancer"
	"github.com/relaypath/llmrelay/pkg/client"
	"github.com/relaypath/llmrelay/pkg/cli"
	"github.com/relaypath/llmrelay/pkg/config"
	"github.com/relaypath/llmrelay/pkg/providers"
)

// buildClient loads cfgFile and wires a balancer and client facade over it.
// The returned closer must be called to stop the balancer's health-check
// loop once the command is done.
func buildClient() (*client.Client, func(), error) {
	pool, err := config.BuildPool(cfgFile, providers.DefaultAdapters())
	if err != nil {
		return nil, nil, cli.NewConfigError(cfgFile, err.Error())
	}

	b := balancer.New(pool)
	c := client.New(b)
	return c, b.Close, nil
}

// pinOption returns a client.Option pinning the call to pinFlag's family,
// or nil if the flag was not set.
func pinOption() client.Option {
	if pinFlag == "" {
		return nil
	}
	return client.WithProvider(pinFlag)
}

// applyPin appends a non-nil pinOption to opts.
func applyPin(opts []client.Option) []client.Option {
	if opt := pinOption(); opt != nil {
		opts = append(opts, opt)
	}
	return opts
}
