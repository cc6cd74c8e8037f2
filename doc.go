// Package mwdump decodes MediaWiki revision-history XML dumps as a stream.
//
// Pages are decoded one at a time and passed to a PageFunc, so memory use is
// bounded by the largest page rather than the size of the dump:
//
//	err := mwdump.ParseFile("enwiki-pages-meta-history1.xml.bz2", func(p *mwdump.Page) error {
//		fmt.Println(p.Title, len(p.Revisions))
//		return nil
//	})
//
// Files ending in .bz2 are read through bzip2 and files ending in .7z through a
// bare LZMA decoder. Any deviation from the export grammar stops decoding with
// a positioned error from the errors package. A PageFunc may return ErrStop
// to end decoding early without error.
package mwdump
