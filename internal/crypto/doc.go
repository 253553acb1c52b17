// Package crypto exposes the primitives used by sealbox.
//
// Contents
//
//   - RSA-2048 key generation with PKCS#1 PEM encoding (GenerateKeyPair)
//   - RSA-OAEP/SHA-256 encryption to base64 and back (Encrypt, Decrypt)
//   - A passphrase keystore envelope for the client's private key at rest
//     (SealPrivateKey, OpenPrivateKey)
//
// # Notes
//
// The OAEP scheme is fixed so ciphertexts from any conformant implementation
// are interchangeable. All functions are pure and safe for concurrent use.
// Failures are reported as domain.ErrCrypto.
package crypto
