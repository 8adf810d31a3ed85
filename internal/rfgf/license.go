package rfgf

import "strings"

// CoordsColumn is the index of the coordinate listing column.
const CoordsColumn = 8

// License is one registry record mapped onto the block layer attributes.
type License struct {
	RfgfLink                        string `json:"rfgf_link"`
	GosRegNum                       string `json:"gos_reg_num"`
	DateRegister                    string `json:"date_register"`
	LicensePurpose                  string `json:"license_purpose"`
	ResourceType                    string `json:"resource_type"`
	LicenseBlockName                string `json:"license_block_name"`
	Region                          string `json:"region"`
	Status                          string `json:"status"`
	UserInfo                        string `json:"user_info"`
	Licensor                        string `json:"licensor"`
	LicenseDocRequisites            string `json:"license_doc_requisites"`
	LicenseUpdateInfo               string `json:"license_update_info"`
	LicenseReRegistrationInfo       string `json:"license_re_registration_info"`
	LicenseCancelOrderInfo          string `json:"license_cancel_order_info"`
	DateStopSubsoilUsage            string `json:"date_stop_subsoil_usage"`
	LimitConditionsStopSubsoilUsage string `json:"limit_conditions_stop_subsoil_usage"`
	DateLicenseStop                 string `json:"date_license_stop"`
	PreviousLicenseInfo             string `json:"previous_license_info"`
	CoordsText                      string `json:"coords_text"`
	SourceGCS                       string `json:"source_gcs,omitempty"`
}

// fieldColumns maps License fields, in declaration order, to export columns.
var fieldColumns = []int{0, 1, 3, 4, 5, 6, 7, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, CoordsColumn}

// HasGeometry reports whether row carries a coordinate listing.
func (t *Table) HasGeometry(row int) bool {
	return strings.Contains(t.Value(CoordsColumn, row), "°")
}

// License maps row onto a License record.
func (t *Table) License(row int) License {
	v := make([]string, len(fieldColumns))
	for i, c := range fieldColumns {
		v[i] = t.Value(c, row)
	}

	return License{
		RfgfLink:                        v[0],
		GosRegNum:                       v[1],
		DateRegister:                    v[2],
		LicensePurpose:                  v[3],
		ResourceType:                    v[4],
		LicenseBlockName:                v[5],
		Region:                          v[6],
		Status:                          v[7],
		UserInfo:                        v[8],
		Licensor:                        v[9],
		LicenseDocRequisites:            v[10],
		LicenseUpdateInfo:               v[11],
		LicenseReRegistrationInfo:       v[12],
		LicenseCancelOrderInfo:          v[13],
		DateStopSubsoilUsage:            v[14],
		LimitConditionsStopSubsoilUsage: v[15],
		DateLicenseStop:                 v[16],
		PreviousLicenseInfo:             v[17],
		CoordsText:                      v[18],
	}
}

// Properties returns the record as GeoJSON feature properties.
func (l License) Properties() map[string]interface{} {
	return map[string]interface{}{
		"rfgf_link":                           l.RfgfLink,
		"gos_reg_num":                         l.GosRegNum,
		"date_register":                       l.DateRegister,
		"license_purpose":                     l.LicensePurpose,
		"resource_type":                       l.ResourceType,
		"license_block_name":                  l.LicenseBlockName,
		"region":                              l.Region,
		"status":                              l.Status,
		"user_info":                           l.UserInfo,
		"licensor":                            l.Licensor,
		"license_doc_requisites":              l.LicenseDocRequisites,
		"license_update_info":                 l.LicenseUpdateInfo,
		"license_re_registration_info":        l.LicenseReRegistrationInfo,
		"license_cancel_order_info":           l.LicenseCancelOrderInfo,
		"date_stop_subsoil_usage":             l.DateStopSubsoilUsage,
		"limit_conditions_stop_subsoil_usage": l.LimitConditionsStopSubsoilUsage,
		"date_license_stop":                   l.DateLicenseStop,
		"previous_license_info":               l.PreviousLicenseInfo,
		"coords_text":                         l.CoordsText,
		"source_gcs":                          l.SourceGCS,
	}
}
