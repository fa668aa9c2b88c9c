package out

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	hookrpc "focustrack/internal/modules/hook/adapter/out/rpc"
	"focustrack/internal/modules/hook/domain"
	hookout "focustrack/internal/modules/hook/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost launches a hook binary per call and kills it afterwards.
type GRPCHost struct {
	logger hclog.Logger
}

func NewGRPCHost(logger hclog.Logger) hookout.Host {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GRPCHost{logger: logger}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := context.WithTimeout(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.Metadata{}, fmt.Errorf("%w: %s", domain.ErrHookTimeout, manifest.Name)
		}
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Events: meta.Events}, nil
}

func (h *GRPCHost) Deliver(ctx context.Context, manifest domain.Manifest, event domain.Event) error {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := context.WithTimeout(ctx, manifest.Timeout())
	defer cancel()

	response, err := client.Deliver(callCtx, toRequest(event))
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", domain.ErrHookTimeout, manifest.Name)
		}
		return fmt.Errorf("deliver %s: %w", event.Name, err)
	}
	if !response.Accepted {
		return fmt.Errorf("%w: %s: %s", domain.ErrDeliveryRejected, manifest.Name, response.Message)
	}
	return nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (hookrpc.SessionHookClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  hookrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          hookrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start hook client: %w", err)
	}
	raw, err := rpcClient.Dispense(hookrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense hook: %w", err)
	}
	typed, ok := raw.(hookrpc.SessionHookClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("hook rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func toRequest(event domain.Event) *hookrpc.DeliverRequest {
	req := &hookrpc.DeliverRequest{
		Event:      event.Name,
		OccurredAt: event.OccurredAt.Format(time.RFC3339),
	}
	if s := event.Session; s != nil {
		req.Session = &hookrpc.Session{
			ID:              s.ID,
			Category:        s.Category,
			DurationSeconds: s.DurationSeconds,
			Distractions:    s.Distractions,
			Date:            s.Date.Format(time.RFC3339),
		}
	}
	return req
}
