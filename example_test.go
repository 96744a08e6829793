package streammd_test

import (
	"context"
	"fmt"
	"log"

	streammd "github.com/alnah/go-streammd"
)

func ExampleMarkdownToHTML() {
	fmt.Println(streammd.MarkdownToHTML("# Hello\nSome **bold** text"))
	// Output: <h1>Hello</h1>Some <b>bold</b> text
}

func ExampleConverter_Convert() {
	conv, err := streammd.NewConverter()
	if err != nil {
		log.Fatal(err)
	}

	result, err := conv.Convert(context.Background(), streammd.Input{
		Markdown: "<script>alert(1)</script> & more",
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(result.HTML))
	// Output: &lt;script&gt;alert(1)&lt;/script&gt; &amp; more
}

func ExampleStream() {
	conv, err := streammd.NewConverter()
	if err != nil {
		log.Fatal(err)
	}

	s := conv.NewStream()
	for _, chunk := range []string{"**bo", "ld**"} {
		if _, err := s.WriteString(chunk); err != nil {
			log.Fatal(err)
		}
		fmt.Println(s.HTML())
	}
	// Output:
	// **bo
	// <b>bold</b>
}
