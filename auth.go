// Package sdk provides the SpeleoDB Go SDK for managing cave-survey
// projects and exchanging Ariane survey files with a SpeleoDB server.
package sdk

import (
	"net/http"
	"strings"
)

type authStrategy interface {
	Apply(req *http.Request)
}

type authChain []authStrategy

func (c authChain) Apply(req *http.Request) {
	for _, s := range c {
		if s == nil {
			continue
		}
		s.Apply(req)
	}
}

// tokenAuth sends a DRF-style token header: "Authorization: Token <value>".
type tokenAuth struct {
	token string
}

func (t tokenAuth) Apply(req *http.Request) {
	if t.token == "" {
		return
	}
	req.Header.Set("Authorization", "Token "+t.token)
}

func buildAuthChain(cfg Config) authChain {
	var chain authChain
	if cfg.AuthToken != "" {
		token := strings.TrimSpace(cfg.AuthToken)
		if strings.HasPrefix(strings.ToLower(token), "token ") {
			token = strings.TrimSpace(token[6:])
		}
		chain = append(chain, tokenAuth{token: token})
	}
	return chain
}
