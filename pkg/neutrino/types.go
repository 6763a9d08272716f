package neutrino

// PhoneKind is the kind of line a phone number belongs to.
type PhoneKind string

const (
	PhoneKindMobile      PhoneKind = "mobile"
	PhoneKindFixedLine   PhoneKind = "fixed-line"
	PhoneKindPremiumRate PhoneKind = "premium-rate"
	PhoneKindTollFree    PhoneKind = "toll-free"
	PhoneKindVoIP        PhoneKind = "voip"
	PhoneKindUnknown     PhoneKind = "unknown"
)

func (k *PhoneKind) UnmarshalText(text []byte) error {
	v, err := parseToken("phone kind", text,
		PhoneKindMobile, PhoneKindFixedLine, PhoneKindPremiumRate,
		PhoneKindTollFree, PhoneKindVoIP, PhoneKindUnknown)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ProviderKind classifies the network operator behind an IP address.
type ProviderKind string

const (
	ProviderKindISP        ProviderKind = "isp"
	ProviderKindHosting    ProviderKind = "hosting"
	ProviderKindVPN        ProviderKind = "vpn"
	ProviderKindProxy      ProviderKind = "proxy"
	ProviderKindUniversity ProviderKind = "university"
	ProviderKindGovernment ProviderKind = "government"
	ProviderKindCommercial ProviderKind = "commercial"
	ProviderKindUnknown    ProviderKind = "unknown"
)

func (k *ProviderKind) UnmarshalText(text []byte) error {
	v, err := parseToken("provider kind", text,
		ProviderKindISP, ProviderKindHosting, ProviderKindVPN, ProviderKindProxy,
		ProviderKindUniversity, ProviderKindGovernment, ProviderKindCommercial, ProviderKindUnknown)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// HLRStatus is the device status reported by the home location register.
type HLRStatus string

const (
	HLRStatusOK        HLRStatus = "ok"
	HLRStatusAbsent    HLRStatus = "absent"
	HLRStatusUnknown   HLRStatus = "unknown"
	HLRStatusInvalid   HLRStatus = "invalid"
	HLRStatusFixedLine HLRStatus = "fixed-line"
	HLRStatusVoIP      HLRStatus = "voip"
	HLRStatusFailed    HLRStatus = "failed"
)

func (s *HLRStatus) UnmarshalText(text []byte) error {
	v, err := parseToken("hlr status", text,
		HLRStatusOK, HLRStatusAbsent, HLRStatusUnknown, HLRStatusInvalid,
		HLRStatusFixedLine, HLRStatusVoIP, HLRStatusFailed)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Timezone describes the local time zone of a location.
type Timezone struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Abbr   string `json:"abbr"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Offset string `json:"offset"`
}

func (t *Timezone) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	return obj.fields(
		member(&t.ID, "id"),
		member(&t.Name, "name"),
		member(&t.Abbr, "abbr"),
		member(&t.Date, "date"),
		member(&t.Time, "time"),
		member(&t.Offset, "offset"),
	)
}

// Sensor is one blocklist sensor that reported an IP address.
type Sensor struct {
	ID          uint64 `json:"id"`
	Blocklist   string `json:"blocklist"`
	Description string `json:"description"`
}

func (s *Sensor) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	return obj.fields(
		member(&s.ID, "id"),
		member(&s.Blocklist, "blocklist"),
		member(&s.Description, "description"),
	)
}
