package tools

import (
	"fmt"
	"strings"
)

// Filter allow-lists for the transactions and refunds report endpoints. The
// gateway rejects anything outside these sets, so the tools fail fast with a
// message naming the valid values instead of burning a call.

var txnStatuses = []string{
	"captured", "failed", "failure", "blocked", "cancelled", "bounced",
	"refundPending", "refundSuccess", "autoRefund", "Auto Refund Initiated",
	"Auto Refunded", "in progress", "auth", "pending", "initiated",
	"in-progress", "in_progress", "Authorized", "userCancelled", "dropped",
	"refundFailed", "Cancelled",
}

var txnModes = []string{
	"CC", "EMI", "UPI", "enach", "SBQR", "ADHR", "DBT", "UPICC", "UPICLI",
	"UPIOTM", "DC", "CASH", "CHALLANPAYMENTS", "PAYPAL", "ISBQR", "QR",
	"NEFTRTGS", "UPIPPI", "CLW", "OLW", "UPICL", "SPLITPAY", "OFUPI",
	"DBQR", "LAZYPAY", "payViaApp", "COD", "CN", "NB",
}

var paymentSources = []string{
	"pg", "button", "paymentLink", "apiIntInvoice", "excelPlugin",
	"appPaymentLink", "payHandle", "appPayHandle", "slashPayHandle",
	"webstore", "sist", "sinst", "si_invoice", "event", "storefront",
	"pos", "appItemizedInvoice", "itemizedInvoice", "sirecurring",
}

var aggregators = []string{"PayU", "AxisCyber", "RazorPay"}

var moreFilters = []string{
	"ivr", "remReattempts", "interTxn", "mobile", "txnOffer", "emailInvoice",
	"uniqTxn", "domTxn", "web", "siInvoice", "subEMI", "chargebackTxn", "tpv",
}

var txnCurrencies = []string{"USD", "AED", "AUD", "CAD", "GBP", "OTH"}

var refundStatuses = []string{"requested", "success", "failure", "queued", "pending", "user_cancelled"}

// checkFilter verifies every supplied value against the allow-list for its
// filter kind. A non-empty return is the rejection reply.
func checkFilter(kind string, values, allowed []string) string {
	for _, v := range values {
		if !contains(allowed, v) {
			return jsonError(fmt.Sprintf("Invalid %s '%s'. Valid values are: %s",
				kind, v, strings.Join(allowed, ", ")))
		}
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
