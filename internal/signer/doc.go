// Package signer embeds clear-signatures into HTML documents.
//
// A document is signed by wrapping it as
//
//	<marker> -->
//	<content><!--
//
// and clear-signing that text with the external tool. The signed block,
// minus its final newline, is then placed inside an HTML comment:
//
//	<!--
//	-----BEGIN PGP SIGNED MESSAGE-----
//	Hash: SHA256
//
//	<marker> -->
//	<content><!--
//	-----BEGIN PGP SIGNATURE-----
//	...
//	-----END PGP SIGNATURE-----
//	-->
//
// Browsers render the page content untouched while the whole file stays a
// valid clear-signed message for anyone who strips the outer comment.
package signer
