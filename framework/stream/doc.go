// Package stream provides the byte stream used as message bodies and
// uploaded file contents.
//
// A Stream owns a Resource: any io.Closer, optionally also an io.Reader,
// io.Writer and io.Seeker. Files opened through OpenFile remember their
// fopen-style mode, which drives IsReadable and IsWritable.
//
//	f := stream.NewFactory()
//
//	body, _ := f.CreateStream(`{"ok":true}`)   // in-memory, rewound
//	file, _ := f.CreateStreamFromFile("a.txt", "rb")
//	raw := f.CreateStreamFromResource(stream.NewMemory())
//
//	body.Read(5)            // `{"ok"`, nil
//	body.Contents()         // `:true}`, nil
//	body.EOF()              // true
//	body.Rewind()
//	body.String()           // `{"ok":true}`, never fails
//
// # Errors
//
// Tell, Seek, Rewind, Read, Write and Contents return *Error. Operations on a
// detached or closed stream wrap ErrNoResource, except Write, which returns
// 0 and no error, and Contents, which returns "".
package stream
