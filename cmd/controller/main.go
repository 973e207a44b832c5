package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/junsooki/AirDroid/internal/clipboard"
	"github.com/junsooki/AirDroid/internal/config"
	"github.com/junsooki/AirDroid/internal/control"
	"github.com/junsooki/AirDroid/internal/display"
	"github.com/junsooki/AirDroid/internal/filepush"
	"github.com/junsooki/AirDroid/internal/input"
	"github.com/junsooki/AirDroid/internal/inputmgr"
	"github.com/junsooki/AirDroid/internal/peer"
	"github.com/junsooki/AirDroid/internal/processor"
	"github.com/junsooki/AirDroid/internal/signaling"
	"github.com/junsooki/AirDroid/internal/transport"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.ParseControllerFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Usage: airdroid-controller -signaling <url> -device <device-id> | -ws <url>")
		os.Exit(2)
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("controller failed")
	}
}

func run(cfg *config.ControllerConfig) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().
		Str("controller_id", cfg.ControllerID).
		Str("device", cfg.DeviceID).
		Str("signaling", cfg.SignalingURL).
		Str("ws", cfg.WebSocketURL).
		Bool("control", cfg.Control).
		Msg("AirDroid controller starting")

	disp := display.NewEbitenDisplay(display.Options{
		Title:      "AirDroid " + cfg.DeviceID,
		FrameSize:  cfg.FrameSize,
		CaptureKey: cfg.CaptureKey,
	})
	defer disp.Close()

	tr, closed, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer tr.Close()

	go func() {
		select {
		case <-ctx.Done():
		case <-closed:
			log.Warn().Msg("connection to the device closed")
		}
		disp.Stop()
	}()

	wg := conc.NewWaitGroup()
	defer wg.Wait()
	defer cancel()

	params := inputmgr.Params{
		Screen:            disp,
		Clipboard:         clipboard.System{},
		Keymap:            cfg.Keymap,
		ForwardAllClicks:  cfg.ForwardAllClicks,
		LegacyPaste:       cfg.LegacyPaste,
		ClipboardAutosync: cfg.ClipboardAutosync,
		ShortcutMods:      cfg.ShortcutMods,
	}

	var acker control.AckHandler
	if cfg.Control {
		ctrl := control.NewController(tr, control.DefaultQueueSize)
		wg.Go(func() { ctrl.Run(ctx) })

		fp := filepush.New(cfg.FilePush)
		wg.Go(func() { fp.Run(ctx) })

		kb := processor.NewKeyboardInject(ctrl, cfg.KeyInjectMode, cfg.ForwardKeyRepeat)
		var kp input.KeyProcessor = kb
		if cfg.PasteAck {
			ack := processor.NewAckKeyboard(kb, processor.DefaultAckTimeout)
			kp = ack
			acker = ack
		}

		params.Controller = ctrl
		params.FilePusher = fp
		params.KeyProcessor = kp
		params.MouseProcessor = processor.NewMouseInject(ctrl)
	}

	var local control.ClipboardSetter
	if sys := (clipboard.System{}); sys.Supported() {
		local = sys
	} else {
		log.Warn().Msg("system clipboard unavailable, clipboard sync disabled")
		params.Clipboard = nil
	}
	tr.OnDevice(control.NewReceiver(local, acker).HandleData)

	mgr, err := inputmgr.New(params)
	if err != nil {
		return err
	}
	disp.SetHandler(mgr)

	// Ebitengine RunGame must be on the main goroutine (macOS requirement).
	if err := disp.Run(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// connect opens the control transport: a direct WebSocket when configured,
// otherwise WebRTC data channels negotiated through the signaling server.
// closed fires when the connection is lost.
func connect(ctx context.Context, cfg *config.ControllerConfig) (transport.Transport, <-chan struct{}, error) {
	if cfg.WebSocketURL != "" {
		tr, err := transport.DialWebSocket(ctx, cfg.WebSocketURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("url", cfg.WebSocketURL).Msg("connected to device agent")
		return tr, tr.Done(), nil
	}

	var ctrlPeer *peer.Controller
	sig := signaling.NewClient(cfg.SignalingURL, cfg.ControllerID, signaling.ClientTypeController, signaling.Handler{
		OnRegistered: func() {
			log.Info().Msg("registered with signaling server")
			if err := ctrlPeer.Connect(); err != nil {
				log.Error().Err(err).Msg("controller connect")
			}
		},
		OnAnswer: func(from string, payload json.RawMessage) {
			if err := ctrlPeer.HandleAnswer(payload); err != nil {
				log.Warn().Err(err).Str("from", from).Msg("handle answer")
			}
		},
		OnICECandidate: func(from string, payload json.RawMessage) {
			if err := ctrlPeer.HandleICECandidate(payload); err != nil {
				log.Warn().Err(err).Str("from", from).Msg("handle ICE candidate")
			}
		},
		OnDeviceDisconnected: func(deviceID string) {
			if deviceID == cfg.DeviceID {
				log.Warn().Str("device", deviceID).Msg("device disconnected")
			}
		},
		OnError: func(msg string) {
			log.Error().Str("message", msg).Msg("signaling error")
		},
	})

	var err error
	if ctrlPeer, err = peer.NewController(sig, cfg.DeviceID, cfg.ICEURLs); err != nil {
		return nil, nil, fmt.Errorf("create controller peer: %w", err)
	}
	if err := sig.Connect(ctx); err != nil {
		ctrlPeer.Close()
		return nil, nil, err
	}
	return &peerTransport{DataChannelTransport: ctrlPeer.Transport(), peer: ctrlPeer, sig: sig}, sig.Done(), nil
}

// peerTransport closes the signaling client and the peer connection along
// with the data channels.
type peerTransport struct {
	*transport.DataChannelTransport
	peer *peer.Controller
	sig  *signaling.Client
}

func (t *peerTransport) Close() error {
	t.sig.Close()
	return t.peer.Close()
}
