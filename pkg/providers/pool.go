package providers

import "fmt"

// KeyEntry is one configured key record for a family: the shape the config
// loader produces per §6 of the external interface, after defaulting.
type KeyEntry struct {
	APIKey    string
	APIBase   string
	Model     string
	RateLimit int
}

// Pool holds, per enabled family, the ordered list of ProviderInstance built
// from configuration. It is immutable after construction; the Load Balancer
// reads it but never mutates the map or slices themselves (only the
// instances' own internal state changes).
type Pool struct {
	families map[string][]*ProviderInstance
	adapters map[string]Adapter
	order    []string // enabled families, in config order
}

// NewPool builds a Pool from the enabled families (in declaration order) and
// their key entries. adapters must contain one Adapter per family named in
// enabled; an enabled family with no adapter is a ConfigError.
func NewPool(enabled []string, entries map[string][]KeyEntry, adapters map[string]Adapter) (*Pool, error) {
	p := &Pool{
		families: make(map[string][]*ProviderInstance),
		adapters: adapters,
		order:    append([]string(nil), enabled...),
	}

	counter := 0
	for _, family := range enabled {
		if _, ok := adapters[family]; !ok {
			return nil, &ConfigError{Field: "llm.use", Message: fmt.Sprintf("no adapter registered for family %q", family)}
		}
		keys := entries[family]
		if len(keys) == 0 {
			return nil, &ConfigError{Field: fmt.Sprintf("llm.%s", family), Message: "no key entries configured"}
		}
		instances := make([]*ProviderInstance, 0, len(keys))
		for i, k := range keys {
			if k.APIBase == "" {
				return nil, &ConfigError{Field: fmt.Sprintf("llm.%s[%d].api_base", family, i), Message: "api_base is required"}
			}
			if k.Model == "" {
				return nil, &ConfigError{Field: fmt.Sprintf("llm.%s[%d].model", family, i), Message: "model is required"}
			}
			rateLimit := k.RateLimit
			if rateLimit <= 0 {
				rateLimit = 20
			}
			id := fmt.Sprintf("%s-%d", family, i)
			instances = append(instances, NewProviderInstance(id, family, k.APIKey, k.APIBase, k.Model, rateLimit, counter))
			counter++
		}
		p.families[family] = instances
	}

	return p, nil
}

// Families returns the enabled families in declaration order.
func (p *Pool) Families() []string {
	return append([]string(nil), p.order...)
}

// Adapter returns the registered adapter for family.
func (p *Pool) Adapter(family string) (Adapter, bool) {
	a, ok := p.adapters[family]
	return a, ok
}

// Instances returns the instances for family.
func (p *Pool) Instances(family string) []*ProviderInstance {
	return p.families[family]
}

// All returns every instance across every enabled family, in declaration
// order.
func (p *Pool) All() []*ProviderInstance {
	var all []*ProviderInstance
	for _, family := range p.order {
		all = append(all, p.families[family]...)
	}
	return all
}
