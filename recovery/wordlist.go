package recovery

// wordlist is the fixed 26-word NATO-style alphabet table recovery codes are
// drawn from. It never changes: codes generated under an older version of
// this package must remain readable by a newer one.
var wordlist = [26]string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel",
	"india", "juliett", "kilo", "lima", "mike", "november", "oscar", "papa",
	"quebec", "romeo", "sierra", "tango", "uniform", "victor", "whiskey",
	"xray", "yankee", "zulu",
}
