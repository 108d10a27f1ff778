package useCases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"aircardctl/internal/config"
	"aircardctl/internal/domain"
	"aircardctl/internal/ports"
)

// Dispatcher logs in once and then executes the command words from the
// command line, strictly in the order given, against that one session.
type Dispatcher struct {
	modem ports.Modem
	cfg   *config.AppConfig
	log   *slog.Logger
	out   io.Writer

	doc *domain.StatusDocument
}

func NewDispatcher(modem ports.Modem, cfg *config.AppConfig, log *slog.Logger, out io.Writer) *Dispatcher {
	return &Dispatcher{modem: modem, cfg: cfg, log: log, out: out}
}

// Run performs the login handshake and dispatches every recognized
// command word. Matching is case-insensitive substring matching, so
// "INFO" and "show-info" both run the info command. Unrecognized words
// are warnings; the first command failure aborts the rest.
func (d *Dispatcher) Run(ctx context.Context, args []string) error {
	doc, err := d.modem.Login(ctx)
	if err != nil {
		return err
	}
	d.doc = doc

	for _, arg := range args {
		word := strings.ToLower(arg)
		switch {
		case strings.Contains(word, "raw"):
			err = d.Raw()
		case strings.Contains(word, "info"):
			err = d.Info()
		case strings.Contains(word, "inbox"):
			err = d.Inbox()
		case strings.Contains(word, "sms"):
			err = d.SendSMS(ctx)
		case strings.Contains(word, "set"):
			err = d.SetConfig(ctx)
		default:
			d.log.Warn("unknown command", "command", arg)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Raw prints the status document back out as indented JSON.
func (d *Dispatcher) Raw() error {
	text, err := d.doc.RawJSON()
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, text)
	return nil
}

var infoLines = []struct {
	label string
	field func(*domain.StatusDocument) string
}{
	{"Manufacturer", func(d *domain.StatusDocument) string { return d.General.Manufacturer }},
	{"Model", func(d *domain.StatusDocument) string { return d.General.Model }},
	{"IMEI", func(d *domain.StatusDocument) string { return d.General.IMEI }},
	{"IP", func(d *domain.StatusDocument) string { return d.WWAN.IP }},
	{"IPv6", func(d *domain.StatusDocument) string { return d.WWAN.IPv6 }},
	{"Service", func(d *domain.StatusDocument) string { return d.WWAN.CurrentPSServiceType }},
	{"Connection", func(d *domain.StatusDocument) string { return d.WWAN.ConnectionText }},
	{"Band", func(d *domain.StatusDocument) string { return d.WWANAdv.CurBand }},
	{"Phone number", func(d *domain.StatusDocument) string { return d.SIM.PhoneNumber }},
	{"SMS count", func(d *domain.StatusDocument) string { return d.SMS.MsgCount.String() }},
	{"SMS unread", func(d *domain.StatusDocument) string { return d.SMS.UnreadMsgs.String() }},
}

// Info prints the fixed status report. Fields the device did not send
// render as empty values, never as an error.
func (d *Dispatcher) Info() error {
	for _, l := range infoLines {
		fmt.Fprintf(d.out, "%s: %s\n", l.label, l.field(d.doc))
	}
	return nil
}

// Inbox prints each stored message as a five-line block in document
// order. Entries the device listed without an id are skipped; an empty
// inbox prints nothing.
func (d *Dispatcher) Inbox() error {
	for _, m := range d.doc.SMS.Msgs {
		if m.ID == "" {
			continue
		}
		fmt.Fprintf(d.out, "ID: %s\nRead: %v\nTime: %s\nFrom: %s\nText: %s\n",
			m.ID, m.Read, m.RxTime, m.Sender, m.Text)
	}
	return nil
}

// SendSMS validates the sms flags and submits the message.
func (d *Dispatcher) SendSMS(ctx context.Context) error {
	if d.cfg.SendTo == "" {
		return fmt.Errorf("Missing phone number")
	}
	if d.cfg.Message == "" {
		return fmt.Errorf("Missing message text")
	}
	return d.modem.SendSMS(ctx, sanitizeReceiver(d.cfg.SendTo), d.cfg.Message)
}

// SetConfig parses the --config entries and applies them. A malformed
// entry aborts before anything is sent to the device.
func (d *Dispatcher) SetConfig(ctx context.Context) error {
	if len(d.cfg.ConfigPairs) == 0 {
		return fmt.Errorf("Missing --config key=value")
	}
	pairs := make([]ports.ConfigPair, 0, len(d.cfg.ConfigPairs))
	for _, entry := range d.cfg.ConfigPairs {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return fmt.Errorf("Incorrect format for key=value '%s'", entry)
		}
		pairs = append(pairs, ports.ConfigPair{Key: key, Value: value})
	}
	return d.modem.SetConfig(ctx, pairs)
}

// sanitizeReceiver strips everything but digits from a phone number,
// keeping a single leading +.
func sanitizeReceiver(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '+' && b.Len() == 0:
			b.WriteByte(c)
		}
	}
	return b.String()
}
