// Package registry registers the API with Consul when a registry address
// is configured; a standalone deployment simply skips it.
package registry

import (
	"fmt"

	consulapi "github.com/hashicorp/consul/api"
)

func Register(consulAddr, serviceName, serviceID, host string, port int) error {
	cfg := consulapi.DefaultConfig()
	cfg.Address = consulAddr
	client, err := consulapi.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("consul client: %w", err)
	}
	reg := &consulapi.AgentServiceRegistration{
		ID:      serviceID,
		Name:    serviceName,
		Address: host,
		Port:    port,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/healthz", host, port),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
	return client.Agent().ServiceRegister(reg)
}
