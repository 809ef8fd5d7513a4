// Package registries assembles the supported registry adapters.
package registries

import (
	"github.com/openownership/boexplorer/internal/adapters/driven/session"
	"github.com/openownership/boexplorer/internal/core/ports/driven"
	"github.com/openownership/boexplorer/internal/registries/bulgariacr"
	"github.com/openownership/boexplorer/internal/registries/czechcr"
	"github.com/openownership/boexplorer/internal/registries/denmarkcvr"
	"github.com/openownership/boexplorer/internal/registries/estoniarik"
	"github.com/openownership/boexplorer/internal/registries/franceinpi"
	"github.com/openownership/boexplorer/internal/registries/gleif"
	"github.com/openownership/boexplorer/internal/registries/latviaur"
	"github.com/openownership/boexplorer/internal/registries/nigeriacac"
	"github.com/openownership/boexplorer/internal/registries/polandkrs"
	"github.com/openownership/boexplorer/internal/registries/slovakiaorsr"
	"github.com/openownership/boexplorer/internal/registries/ukcoh"
)

// Default returns the registry adapters in search order. GLEIF goes first
// so national records merge into LEI records where both exist. owners is
// the Estonian bulk beneficial-owners index; pass nil to let the adapter
// download it on first use. The French register is included only when its
// account credentials are configured, since every request there needs a
// login.
func Default(config driven.ConfigStore, owners *estoniarik.BulkOwners) []driven.Adapter {
	adapters := []driven.Adapter{
		gleif.New(),
		bulgariacr.New(),
		ukcoh.New(config),
		nigeriacac.New(),
		slovakiaorsr.New(),
		denmarkcvr.New(session.NewProvider(config, "denmark_cvr", "S9SESSIONID")),
		latviaur.New(),
		polandkrs.New(),
		estoniarik.New(config, owners),
		czechcr.New(),
	}
	if config != nil && config.GetString("sources.france_inpi.credentials.user") != "" {
		adapters = append(adapters, franceinpi.New(config))
	}
	return adapters
}
