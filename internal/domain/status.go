package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StatusDocument is the decoded /model.json response of the device.
// The firmware omits keys freely depending on model and state, so every
// field here is optional and renders as an empty value when absent.
type StatusDocument struct {
	Session struct {
		SecToken string `json:"secToken"`
	} `json:"session"`
	General struct {
		Manufacturer string `json:"manufacturer"`
		Model        string `json:"model"`
		IMEI         string `json:"IMEI"`
		ConfigURL    string `json:"configURL"`
	} `json:"general"`
	WWAN struct {
		IP                   string `json:"IP"`
		IPv6                 string `json:"IPv6"`
		CurrentPSServiceType string `json:"currentPSserviceType"`
		ConnectionText       string `json:"connectionText"`
	} `json:"wwan"`
	WWANAdv struct {
		CurBand string `json:"curBand"`
	} `json:"wwanadv"`
	SIM struct {
		PhoneNumber string `json:"phoneNumber"`
	} `json:"sim"`
	SMS struct {
		MsgCount   json.Number  `json:"msgCount"`
		UnreadMsgs json.Number  `json:"unreadMsgs"`
		Msgs       []SMSMessage `json:"msgs"`
	} `json:"sms"`

	raw []byte
}

// SMSMessage is one entry of the device's inbox list.
type SMSMessage struct {
	ID     string `json:"id"`
	Read   bool   `json:"read"`
	RxTime string `json:"rxTime"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// DecodeStatus parses a /model.json body. A body that is not valid JSON is
// an error: a document we cannot read is useless for every command.
func DecodeStatus(data []byte) (*StatusDocument, error) {
	var doc StatusDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("status document: %w", err)
	}
	doc.raw = data
	return &doc, nil
}

// RawJSON re-serializes the document as indented JSON. It works from the
// original body so fields the typed model does not know about survive.
func (d *StatusDocument) RawJSON() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, d.raw, "", "  "); err != nil {
		return "", fmt.Errorf("status document: %w", err)
	}
	return buf.String(), nil
}
