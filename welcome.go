package mdark

// WelcomeMarkdown is the buffer content when the editor starts without a file.
const WelcomeMarkdown = "# Welcome to MDark! 🌙\n" +
	"\n" +
	"A **free** and **simple** Markdown to PDF converter.\n" +
	"\n" +
	"## Features\n" +
	"\n" +
	"- ✨ Real-time preview\n" +
	"- 📄 Export to PDF\n" +
	"- 🎨 Beautiful dark theme\n" +
	"- 💚 Pastel green aesthetics\n" +
	"\n" +
	"## How to Use\n" +
	"\n" +
	"1. Type your markdown in the left panel\n" +
	"2. See the preview update in real-time\n" +
	"3. Press ctrl+e when ready to export\n" +
	"\n" +
	"### Code Example\n" +
	"\n" +
	"```javascript\n" +
	"function greet(name) {\n" +
	"  console.log(`Hello, ${name}!`);\n" +
	"}\n" +
	"\n" +
	"greet('World');\n" +
	"```\n" +
	"\n" +
	"### Lists\n" +
	"\n" +
	"**Unordered:**\n" +
	"- Item 1\n" +
	"- Item 2\n" +
	"- Item 3\n" +
	"\n" +
	"**Ordered:**\n" +
	"1. First\n" +
	"2. Second\n" +
	"3. Third\n" +
	"\n" +
	"### Blockquote\n" +
	"\n" +
	"> \"The best way to predict the future is to invent it.\"\n" +
	"> - Alan Kay\n" +
	"\n" +
	"### Table\n" +
	"\n" +
	"| Feature | Status |\n" +
	"|---------|--------|\n" +
	"| Preview | ✅ |\n" +
	"| PDF Export | ✅ |\n" +
	"| Dark Theme | ✅ |\n" +
	"\n" +
	"---\n" +
	"\n" +
	"**Try editing this markdown or write your own!**\n"
