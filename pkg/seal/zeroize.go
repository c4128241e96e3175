package seal

import "runtime"

// ZeroizeBytes overwrites buf with zeros. runtime.KeepAlive keeps the
// stores from being eliminated (golang/go#33325).
//
// Use it on the output of SecretKey.SaveArray once the bytes are no longer
// needed. It cannot reach copies made elsewhere, for instance by the base64
// encoder behind SecretKey.Save.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}
