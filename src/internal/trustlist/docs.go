// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package trustlist builds a DID trust list from a tree of certificates and
// credential key sets.
//
// A [Pipeline] walks its source directory in lexical order and classifies
// every file by extension:
//
//	*.pem   certificate or public key, one key with the file name as kid
//	*.json  JSON Web Key Set, every key with its own kid
//	other   ignored
//
// Each accepted file yields an unsigned and a signed DID document:
//
//	<root>:u:k:<kid>  ->  <dest>/u/k/<kid>/did.json
//	<root>:s:k:<kid>  ->  <dest>/s/k/<kid>/did.json
//
// After the last file, four master lists are assembled from the documents
// of this run. The signed ones are signed again as a whole:
//
//	<root>:u:ml:r  unsigned, methods by reference
//	<root>:u:ml:e  unsigned, methods embedded
//	<root>:s:ml:r  signed, methods by reference
//	<root>:s:ml:e  signed, methods embedded
//
// Documents are only rewritten when their content changed; see package
// persist.
//
// Example usage:
//
//	p := trustlist.New(target, signer,
//		trustlist.WithLogger(log),
//		trustlist.WithCollisionPolicy(x509chain.LastWins),
//	)
//	report, err := p.Run(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Print(report.RenderTable())
package trustlist
