// Package engine is the service layer between the command line and the
// feasibility model. It adds what the pure model leaves out: context
// cancellation, structured logging, scenario and avoided-emission
// enrichment, and concurrent evaluation of whole portfolios.
package engine
