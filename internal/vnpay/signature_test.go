package vnpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "QWERTYUIOPASDFGHJKLZXCVBNM123456"

func testParams() map[string]string {
	return map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    "BOOKSHOP",
		"vnp_Amount":     "25000000",
		"vnp_CreateDate": "20231114153045",
		"vnp_CurrCode":   "VND",
		"vnp_IpAddr":     "127.0.0.1",
		"vnp_Locale":     "vn",
		"vnp_OrderInfo":  "Thanh toan don hang sach",
		"vnp_OrderType":  "other",
		"vnp_ReturnUrl":  "https://site/thanh-toan/ket-qua",
		"vnp_TxnRef":     "ORDER_1700000000_abc123",
	}
}

func TestCanonicalize_SortedAndEncoded(t *testing.T) {
	canonical := Canonicalize(map[string]string{
		"vnp_OrderInfo": "Thanh toan don hang",
		"vnp_Amount":    "25000000",
		"vnp_ReturnUrl": "https://site/thanh-toan/ket-qua",
	})

	assert.Equal(t,
		"vnp_Amount=25000000&vnp_OrderInfo=Thanh+toan+don+hang&vnp_ReturnUrl=https%3A%2F%2Fsite%2Fthanh-toan%2Fket-qua",
		canonical,
	)
}

func TestCanonicalize_InsertionOrderIndependent(t *testing.T) {
	a := map[string]string{}
	keys := []string{"vnp_TxnRef", "vnp_Amount", "vnp_Command", "vnp_OrderInfo", "vnp_Version"}
	src := testParams()
	for _, k := range keys {
		a[k] = src[k]
	}

	b := map[string]string{}
	for i := len(keys) - 1; i >= 0; i-- {
		b[keys[i]] = src[keys[i]]
	}

	assert.Equal(t, Canonicalize(a), Canonicalize(b))
}

func TestCanonicalize_SpacesBecomePlus(t *testing.T) {
	canonical := Canonicalize(map[string]string{"vnp_OrderInfo": "hai tu"})
	assert.Equal(t, "vnp_OrderInfo=hai+tu", canonical)
	assert.NotContains(t, canonical, "%20")
}

func TestCanonicalize_NonASCIIPassthrough(t *testing.T) {
	// Raw UTF-8 bytes are percent-encoded, never stripped.
	canonical := Canonicalize(map[string]string{"vnp_OrderInfo": "Thanh toán"})
	assert.Equal(t, "vnp_OrderInfo=Thanh+to%C3%A1n", canonical)
}

func TestEncoders_NotConflated(t *testing.T) {
	// The final-URL encoder keeps %20; only the signing dialect folds it to '+'.
	assert.Equal(t, "a%20b", encodeComponent("a b"))
	assert.Equal(t, "a+b", encodeCanonicalValue("a b"))
	assert.Equal(t, "a%2Bb", encodeComponent("a+b"))
	assert.Equal(t, "a%2Bb", encodeCanonicalValue("a+b"))
}

func TestSignVerify_RoundTrip(t *testing.T) {
	params := testParams()
	sig := Sign(params, testSecret)

	assert.Len(t, sig, 128)
	assert.Equal(t, sig, Sign(testParams(), testSecret), "signing must be deterministic")
	assert.True(t, Verify(params, sig, testSecret))
}

func TestVerify_TamperedSignature(t *testing.T) {
	params := testParams()
	sig := Sign(params, testSecret)

	for i := 0; i < len(sig); i += 16 {
		tampered := []byte(sig)
		if tampered[i] == '0' {
			tampered[i] = '1'
		} else {
			tampered[i] = '0'
		}
		assert.False(t, Verify(params, string(tampered), testSecret), "flipped char at %d must fail", i)
	}
}

func TestVerify_TamperedValue(t *testing.T) {
	params := testParams()
	sig := Sign(params, testSecret)

	params["vnp_Amount"] = "25000001"
	assert.False(t, Verify(params, sig, testSecret))
}

func TestVerify_WrongSecret(t *testing.T) {
	params := testParams()
	sig := Sign(params, testSecret)
	assert.False(t, Verify(params, sig, "someothersecret"))
}

func TestVerify_IgnoresHashFields(t *testing.T) {
	params := testParams()
	sig := Sign(params, testSecret)

	params[SecureHashField] = sig
	params[secureHashTypeField] = "HmacSHA512"
	assert.True(t, Verify(params, sig, testSecret))
}

func TestSign_ValueChangeChangesSignature(t *testing.T) {
	base := Sign(testParams(), testSecret)
	for k := range testParams() {
		params := testParams()
		params[k] = params[k] + "x"
		assert.NotEqual(t, base, Sign(params, testSecret), "changing %s must change the signature", k)
	}
}

func TestSign_SwappedValuesChangeSignature(t *testing.T) {
	params := testParams()
	base := Sign(params, testSecret)

	params["vnp_TxnRef"], params["vnp_OrderInfo"] = params["vnp_OrderInfo"], params["vnp_TxnRef"]
	assert.NotEqual(t, base, Sign(params, testSecret))
}
