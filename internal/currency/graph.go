/**
 * @description
 * This package implements the exchange-rate graph used by every money-moving
 * operation in the service. Rates are stored as an undirected weighted graph:
 * registering a rate inserts both directions, and resolving a rate between two
 * currencies walks the graph breadth-first, multiplying edge weights along the
 * first path found.
 *
 * @notes
 * - Adjacency lists preserve insertion order. When more than one path connects
 *   two currencies the resolved rate is the product along the first path BFS
 *   discovers, so resolution is deterministic for a fixed registration order.
 * - An unknown currency or a disconnected pair resolves to the 0 sentinel, not
 *   an error. Convert treats the sentinel as "no conversion" and passes the
 *   amount through unchanged. Callers rely on this; see the graph tests.
 *
 * @dependencies
 * - math: Standard Go library, for rounding.
 */

package currency

import "math"

// edge is one directed conversion hop.
type edge struct {
	to   string
	rate float64
}

// Graph resolves conversion rates between registered currencies.
type Graph struct {
	adj map[string][]edge
}

// NewGraph creates an empty exchange-rate graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[string][]edge)}
}

// AddRate registers a conversion rate between two currencies. Both directions
// are inserted: (from -> to, rate) and (to -> from, 1/rate). The rate is
// expected to be positive; this is not validated.
func (g *Graph) AddRate(from, to string, rate float64) {
	g.adj[from] = append(g.adj[from], edge{to: to, rate: rate})
	g.adj[to] = append(g.adj[to], edge{to: from, rate: 1 / rate})
}

// Resolve returns the conversion rate from one currency to another. Identical
// currencies resolve to 1.0 without a graph lookup. Otherwise the graph is
// searched breadth-first in insertion order and the rate is the product of the
// edge weights along the first path found. Unknown currencies and disconnected
// pairs return 0.
func (g *Graph) Resolve(from, to string) float64 {
	if from == to {
		return 1.0
	}
	if _, ok := g.adj[from]; !ok {
		return 0
	}

	type node struct {
		currency string
		rate     float64
	}
	visited := map[string]bool{from: true}
	queue := []node{{currency: from, rate: 1.0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range g.adj[current.currency] {
			if visited[e.to] {
				continue
			}
			accumulated := current.rate * e.rate
			if e.to == to {
				return accumulated
			}
			visited[e.to] = true
			queue = append(queue, node{currency: e.to, rate: accumulated})
		}
	}
	return 0
}

// Convert converts an amount between currencies, rounding the converted value
// to 2 decimals. Identical currencies and unresolvable pairs return the amount
// unchanged. Rounding happens after every individual rate application, never
// deferred to the end of a multi-step computation, so chained conversions keep
// the per-step rounding error.
func (g *Graph) Convert(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	rate := g.Resolve(from, to)
	if rate == 0 {
		return amount
	}
	return Round2(amount * rate)
}

// Round2 rounds a monetary amount half-up to 2 decimal places.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
