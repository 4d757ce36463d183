// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs provides decoding and encoding helpers for [X.509] certificates
// and public keys in [PEM], DER and [PKCS7] form. It classifies PEM blobs by their
// armor markers and exposes the key identifiers used to link a certificate to
// its issuer. The chain resolver and the key normalizer build on it.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
