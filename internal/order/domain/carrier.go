package domain

import "strings"

// Mainland prefixes per carrier; three-digit match on the subscriber
// number after stripping the country code.
var carrierPrefixes = map[string]Carrier{
	"134": CarrierMobile, "135": CarrierMobile, "136": CarrierMobile,
	"137": CarrierMobile, "138": CarrierMobile, "139": CarrierMobile,
	"147": CarrierMobile, "150": CarrierMobile, "151": CarrierMobile,
	"152": CarrierMobile, "157": CarrierMobile, "158": CarrierMobile,
	"159": CarrierMobile, "178": CarrierMobile, "182": CarrierMobile,
	"183": CarrierMobile, "184": CarrierMobile, "187": CarrierMobile,
	"188": CarrierMobile, "198": CarrierMobile,

	"130": CarrierUnicom, "131": CarrierUnicom, "132": CarrierUnicom,
	"145": CarrierUnicom, "155": CarrierUnicom, "156": CarrierUnicom,
	"166": CarrierUnicom, "175": CarrierUnicom, "176": CarrierUnicom,
	"185": CarrierUnicom, "186": CarrierUnicom,

	"133": CarrierTelecom, "149": CarrierTelecom, "153": CarrierTelecom,
	"173": CarrierTelecom, "177": CarrierTelecom, "180": CarrierTelecom,
	"181": CarrierTelecom, "189": CarrierTelecom, "199": CarrierTelecom,
}

// DetectCarrier maps a phone number to its carrier by prefix.
func DetectCarrier(phone string) Carrier {
	digits := strings.TrimSpace(phone)
	digits = strings.TrimPrefix(digits, "+86")
	digits = strings.TrimPrefix(digits, "86")
	if len(digits) < 3 {
		return CarrierUnknown
	}
	if c, ok := carrierPrefixes[digits[:3]]; ok {
		return c
	}
	return CarrierUnknown
}
