package neutrino

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"reflect"
	"testing"
)

func mustAddr(t *testing.T, s string) netip.Addr {
	t.Helper()
	addr, err := netip.ParseAddr(s)
	if err != nil {
		t.Fatalf("parse addr %q: %v", s, err)
	}
	return addr
}

const ipInfoBody = `
{
	"ip": "128.0.0.1",
	"valid": true,
	"is_v6": false,
	"is_v4_mapped": false,
	"is_bogon": false,
	"country": "ACountry",
	"country_code": "AC",
	"country_code3": "ACO",
	"continent_code": "EU",
	"currency_code": "ABC",
	"city": "Roubaix",
	"region": "Hauts-de-ACountry",
	"longitude": 1.00000,
	"latitude": 1.00000,
	"hostname": "",
	"host_domain": "",
	"timezone": %s
}`

func TestIPInfoTimezoneVariants(t *testing.T) {
	paris := &Timezone{
		ID:     "Europe/Paris",
		Name:   "Central European Standard Time",
		Abbr:   "CET",
		Date:   "2021-11-24",
		Time:   "12:47:33.825588",
		Offset: "+01:00",
	}
	cases := []struct {
		name     string
		timezone string
		want     *Timezone
	}{
		{name: "empty object", timezone: `{}`, want: nil},
		{name: "null", timezone: `null`, want: nil},
		{name: "populated", timezone: `{"id":"Europe/Paris","name":"Central European Standard Time","abbr":"CET",
			"date":"2021-11-24","time":"12:47:33.825588","offset":"+01:00"}`, want: paris},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/ip-info" {
					t.Errorf("path = %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("ip") != "128.0.0.1" || q.Get("output-case") != "snake" {
					t.Errorf("query = %s", r.URL.RawQuery)
				}
				_, _ = w.Write([]byte(fmt.Sprintf(ipInfoBody, tc.timezone)))
			})

			got, err := c.IPInfo(context.Background(), mustAddr(t, "128.0.0.1"))
			if err != nil {
				t.Fatalf("IPInfo: %v", err)
			}
			if !got.IsValid {
				t.Fatalf("IsValid = false, want true from the valid alias")
			}
			if got.IP != mustAddr(t, "128.0.0.1") || got.City != "Roubaix" || got.Longitude != 1 {
				t.Fatalf("unexpected response: %+v", got)
			}
			if !reflect.DeepEqual(got.Timezone, tc.want) {
				t.Fatalf("Timezone = %+v, want %+v", got.Timezone, tc.want)
			}
		})
	}
}

func TestIPInfoPartialTimezoneIsDecodeError(t *testing.T) {
	body := fmt.Sprintf(ipInfoBody, `{"id":"Europe/Paris"}`)
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	_, err := c.IPInfo(context.Background(), mustAddr(t, "128.0.0.1"))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err = %v, want *DecodeError", err)
	}
	if string(decodeErr.Body) != body {
		t.Fatalf("DecodeError must carry the raw body")
	}
}

func TestIPBlocklist(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ip-blocklist" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("ip") != "128.0.0.1" || q.Get("vpn-lookup") != "true" || q.Get("output-case") != "snake" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{
			"ip": "128.0.0.1",
			"is_listed": true,
			"last_seen": 1637751000,
			"list_count": 2,
			"blocklists": ["spam", "bot"],
			"sensors": [{"id": 7, "blocklist": "spam", "description": "honeypot"}],
			"is_proxy": false,
			"is_tor": false,
			"is_vpn": true,
			"is_malware": false,
			"is_spyware": false,
			"is_dshield": false,
			"is_hijacked": false,
			"is_spider": false,
			"is_bot": true,
			"is_spam_bot": true,
			"is_exploit_bot": false,
			"cidr": "128.0.0.0/24"
		}`))
	})

	got, err := c.IPBlocklist(context.Background(), mustAddr(t, "128.0.0.1"))
	if err != nil {
		t.Fatalf("IPBlocklist: %v", err)
	}
	want := &IPBlocklistResponse{
		IP:         mustAddr(t, "128.0.0.1"),
		IsListed:   true,
		LastSeen:   1637751000,
		ListCount:  2,
		Blocklists: []string{"spam", "bot"},
		Sensors:    []Sensor{{ID: 7, Blocklist: "spam", Description: "honeypot"}},
		IsVPN:      true,
		IsBot:      true,
		IsSpamBot:  true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestIPProbe(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ip-probe" || r.URL.Query().Get("ip") != "128.0.0.1" {
			t.Errorf("request = %s", r.URL)
		}
		_, _ = w.Write([]byte(`{
			"country": "ACountry",
			"country_code": "AC",
			"provider_domain": "networkoperator.com",
			"city": "Roubaix",
			"vpn_domain": "",
			"is_vpn": false,
			"as_cidr": "128.0.0.0/22",
			"valid": true,
			"provider_type": "isp",
			"hostname": "",
			"as_age": 8,
			"continent_code": "EU",
			"is_bogon": false,
			"ip": "128.0.0.1",
			"as_country_code": "AC",
			"provider_description": "A network operator description",
			"as_country_code3": "ACO",
			"is_v4_mapped": false,
			"is_isp": true,
			"provider_website": "https://www.networkoperator.com/",
			"as_description": "NETWORK-OPERATOR-AS,AC,Network Operator",
			"is_hosting": false,
			"as_domains": ["networkoperator.com"],
			"host_domain": "",
			"is_proxy": false,
			"currency_code": "ABC",
			"region": "Hauts-de-ACountry",
			"asn": "12345",
			"country_code3": "ACO",
			"is_v6": false
		}`))
	})

	got, err := c.IPProbe(context.Background(), mustAddr(t, "128.0.0.1"))
	if err != nil {
		t.Fatalf("IPProbe: %v", err)
	}
	want := &IPProbeResponse{
		IP:                  mustAddr(t, "128.0.0.1"),
		IsValid:             true,
		Country:             "ACountry",
		CountryCode:         "AC",
		CountryCode3:        "ACO",
		ContinentCode:       "EU",
		CurrencyCode:        "ABC",
		City:                "Roubaix",
		Region:              "Hauts-de-ACountry",
		ProviderDescription: "A network operator description",
		ProviderWebsite:     "https://www.networkoperator.com/",
		ProviderDomain:      "networkoperator.com",
		ProviderType:        ProviderKindISP,
		IsISP:               true,
		ASN:                 "12345",
		ASCIDR:              "128.0.0.0/22",
		ASDomains:           []string{"networkoperator.com"},
		ASDescription:       "NETWORK-OPERATOR-AS,AC,Network Operator",
		ASAge:               8,
		ASCountryCode:       "AC",
		ASCountryCode3:      "ACO",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v\nwant %+v", got, want)
	}
}

func TestIPEndpointsQuery(t *testing.T) {
	addr := mustAddr(t, "2001:db8::1")
	if got := IPInfoEndpoint(addr).PathAndQuery(); got != "/ip-info?ip=2001%3Adb8%3A%3A1&output-case=snake" {
		t.Fatalf("ip-info = %s", got)
	}
	if got := IPBlocklistEndpoint(addr).PathAndQuery(); got != "/ip-blocklist?ip=2001%3Adb8%3A%3A1&output-case=snake&vpn-lookup=true" {
		t.Fatalf("ip-blocklist = %s", got)
	}
	if got := IPProbeEndpoint(addr).PathAndQuery(); got != "/ip-probe?ip=2001%3Adb8%3A%3A1&output-case=snake" {
		t.Fatalf("ip-probe = %s", got)
	}
}
