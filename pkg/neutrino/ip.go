package neutrino

import (
	"context"
	"errors"
	"net/netip"
)

// IPInfoResponse is the answer of /ip-info.
type IPInfoResponse struct {
	IP            netip.Addr `json:"ip"`
	IsValid       bool       `json:"is_valid"`
	IsV6          bool       `json:"is_v6"`
	IsV4Mapped    bool       `json:"is_v4_mapped"`
	IsBogon       bool       `json:"is_bogon"`
	Country       string     `json:"country"`
	CountryCode   string     `json:"country_code"`
	CountryCode3  string     `json:"country_code3"`
	ContinentCode string     `json:"continent_code"`
	CurrencyCode  string     `json:"currency_code"`
	City          string     `json:"city"`
	Region        string     `json:"region"`
	Longitude     float64    `json:"longitude"`
	Latitude      float64    `json:"latitude"`
	Hostname      string     `json:"hostname"`
	HostDomain    string     `json:"host_domain"`
	// Timezone is nil when the service has no zone for the address.
	Timezone *Timezone `json:"timezone"`
}

func (r *IPInfoResponse) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	return errors.Join(
		obj.fields(
			member(&r.IP, "ip"),
			member(&r.IsValid, "valid", "is_valid"),
			member(&r.IsV6, "is_v6"),
			member(&r.IsV4Mapped, "is_v4_mapped"),
			member(&r.IsBogon, "is_bogon"),
			member(&r.Country, "country"),
			member(&r.CountryCode, "country_code"),
			member(&r.CountryCode3, "country_code3"),
			member(&r.ContinentCode, "continent_code"),
			member(&r.CurrencyCode, "currency_code"),
			member(&r.City, "city"),
			member(&r.Region, "region"),
			member(&r.Longitude, "longitude"),
			member(&r.Latitude, "latitude"),
			member(&r.Hostname, "hostname"),
			member(&r.HostDomain, "host_domain"),
		),
		optionalField(obj, &r.Timezone, "timezone"),
	)
}

// IPBlocklistResponse is the answer of /ip-blocklist.
type IPBlocklistResponse struct {
	IP           netip.Addr `json:"ip"`
	IsListed     bool       `json:"is_listed"`
	LastSeen     uint64     `json:"last_seen"`
	ListCount    uint64     `json:"list_count"`
	Blocklists   []string   `json:"blocklists"`
	Sensors      []Sensor   `json:"sensors"`
	IsProxy      bool       `json:"is_proxy"`
	IsTor        bool       `json:"is_tor"`
	IsVPN        bool       `json:"is_vpn"`
	IsMalware    bool       `json:"is_malware"`
	IsSpyware    bool       `json:"is_spyware"`
	IsDshield    bool       `json:"is_dshield"`
	IsHijacked   bool       `json:"is_hijacked"`
	IsSpider     bool       `json:"is_spider"`
	IsBot        bool       `json:"is_bot"`
	IsSpamBot    bool       `json:"is_spam_bot"`
	IsExploitBot bool       `json:"is_exploit_bot"`
}

func (r *IPBlocklistResponse) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	return obj.fields(
		member(&r.IP, "ip"),
		member(&r.IsListed, "is_listed"),
		member(&r.LastSeen, "last_seen"),
		member(&r.ListCount, "list_count"),
		member(&r.Blocklists, "blocklists"),
		member(&r.Sensors, "sensors"),
		member(&r.IsProxy, "is_proxy"),
		member(&r.IsTor, "is_tor"),
		member(&r.IsVPN, "is_vpn"),
		member(&r.IsMalware, "is_malware"),
		member(&r.IsSpyware, "is_spyware"),
		member(&r.IsDshield, "is_dshield"),
		member(&r.IsHijacked, "is_hijacked"),
		member(&r.IsSpider, "is_spider"),
		member(&r.IsBot, "is_bot"),
		member(&r.IsSpamBot, "is_spam_bot"),
		member(&r.IsExploitBot, "is_exploit_bot"),
	)
}

// IPProbeResponse is the answer of /ip-probe.
type IPProbeResponse struct {
	IP                  netip.Addr   `json:"ip"`
	IsValid             bool         `json:"is_valid"`
	IsV6                bool         `json:"is_v6"`
	IsV4Mapped          bool         `json:"is_v4_mapped"`
	IsBogon             bool         `json:"is_bogon"`
	Country             string       `json:"country"`
	CountryCode         string       `json:"country_code"`
	CountryCode3        string       `json:"country_code3"`
	ContinentCode       string       `json:"continent_code"`
	CurrencyCode        string       `json:"currency_code"`
	City                string       `json:"city"`
	Region              string       `json:"region"`
	Hostname            string       `json:"hostname"`
	HostDomain          string       `json:"host_domain"`
	ProviderDescription string       `json:"provider_description"`
	ProviderWebsite     string       `json:"provider_website"`
	ProviderDomain      string       `json:"provider_domain"`
	ProviderType        ProviderKind `json:"provider_type"`
	IsHosting           bool         `json:"is_hosting"`
	IsISP               bool         `json:"is_isp"`
	IsVPN               bool         `json:"is_vpn"`
	IsProxy             bool         `json:"is_proxy"`
	VPNDomain           string       `json:"vpn_domain"`
	ASN                 string       `json:"asn"`
	ASCIDR              string       `json:"as_cidr"`
	ASDomains           []string     `json:"as_domains"`
	ASDescription       string       `json:"as_description"`
	ASAge               uint64       `json:"as_age"`
	ASCountryCode       string       `json:"as_country_code"`
	ASCountryCode3      string       `json:"as_country_code3"`
}

func (r *IPProbeResponse) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return err
	}
	return obj.fields(
		member(&r.IP, "ip"),
		member(&r.IsValid, "valid", "is_valid"),
		member(&r.IsV6, "is_v6"),
		member(&r.IsV4Mapped, "is_v4_mapped"),
		member(&r.IsBogon, "is_bogon"),
		member(&r.Country, "country"),
		member(&r.CountryCode, "country_code"),
		member(&r.CountryCode3, "country_code3"),
		member(&r.ContinentCode, "continent_code"),
		member(&r.CurrencyCode, "currency_code"),
		member(&r.City, "city"),
		member(&r.Region, "region"),
		member(&r.Hostname, "hostname"),
		member(&r.HostDomain, "host_domain"),
		member(&r.ProviderDescription, "provider_description"),
		member(&r.ProviderWebsite, "provider_website"),
		member(&r.ProviderDomain, "provider_domain"),
		member(&r.ProviderType, "provider_type"),
		member(&r.IsHosting, "is_hosting"),
		member(&r.IsISP, "is_isp"),
		member(&r.IsVPN, "is_vpn"),
		member(&r.IsProxy, "is_proxy"),
		member(&r.VPNDomain, "vpn_domain"),
		member(&r.ASN, "asn"),
		member(&r.ASCIDR, "as_cidr"),
		member(&r.ASDomains, "as_domains"),
		member(&r.ASDescription, "as_description"),
		member(&r.ASAge, "as_age"),
		member(&r.ASCountryCode, "as_country_code"),
		member(&r.ASCountryCode3, "as_country_code3"),
	)
}

func ipQuery(path string, addr netip.Addr) Endpoint {
	q := snakeCase()
	q.Set("ip", addr.String())
	return Endpoint{Path: path, Query: q}
}

// IPInfoEndpoint geolocates an address and resolves its PTR record.
func IPInfoEndpoint(addr netip.Addr) Endpoint { return ipQuery("/ip-info", addr) }

// IPBlocklistEndpoint checks an address against the service blocklists, VPN ranges included.
func IPBlocklistEndpoint(addr netip.Addr) Endpoint {
	e := ipQuery("/ip-blocklist", addr)
	e.Query.Set("vpn-lookup", "true")
	return e
}

// IPProbeEndpoint runs a live network probe against an address.
func IPProbeEndpoint(addr netip.Addr) Endpoint { return ipQuery("/ip-probe", addr) }

// IPInfo calls /ip-info.
func (c *Client) IPInfo(ctx context.Context, addr netip.Addr) (*IPInfoResponse, error) {
	return Lookup[IPInfoResponse](ctx, c, IPInfoEndpoint(addr))
}

// IPBlocklist calls /ip-blocklist.
func (c *Client) IPBlocklist(ctx context.Context, addr netip.Addr) (*IPBlocklistResponse, error) {
	return Lookup[IPBlocklistResponse](ctx, c, IPBlocklistEndpoint(addr))
}

// IPProbe calls /ip-probe.
func (c *Client) IPProbe(ctx context.Context, addr netip.Addr) (*IPProbeResponse, error) {
	return Lookup[IPProbeResponse](ctx, c, IPProbeEndpoint(addr))
}
