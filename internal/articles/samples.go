package articles

// SampleArticles returns the built-in articles served when the content
// directory holds no posts. Every call returns fresh copies.
func SampleArticles() []*Article {
	return []*Article{
		{
			Slug:     "getting-started-with-nextjs",
			Title:    "Getting Started with Next.js: A Modern React Framework",
			Date:     "2024-01-15",
			Excerpt:  "Learn how to build modern web applications with Next.js, the popular React framework that makes it easy to create full-stack web applications.",
			Content:  sampleNextJSContent,
			Author:   "John Doe",
			ReadTime: 8,
			Category: "Next.js",
		},
		{
			Slug:     "tailwind-css-best-practices",
			Title:    "Tailwind CSS Best Practices for Modern Web Development",
			Date:     "2024-01-10",
			Excerpt:  "Discover the best practices for using Tailwind CSS in your projects, including utility-first design principles and responsive design patterns.",
			Content:  sampleTailwindContent,
			Author:   "Jane Smith",
			ReadTime: 6,
			Category: "CSS",
		},
		{
			Slug:     "modern-javascript-features",
			Title:    "Modern JavaScript Features You Should Know in 2024",
			Date:     "2024-01-05",
			Excerpt:  "Explore the latest JavaScript features that will make your code more efficient and readable, including optional chaining, nullish coalescing, and more.",
			Content:  sampleJavaScriptContent,
			Author:   "Mike Johnson",
			ReadTime: 7,
			Category: "JavaScript",
		},
	}
}

const sampleNextJSContent = `<h2>Introduction to Next.js</h2>
<p>Next.js is a powerful React framework that enables you to build full-stack web applications. It provides many features out of the box, including server-side rendering, static site generation, and API routes.</p>
<h2>Key Features</h2>
<ul>
<li>Server-side rendering (SSR)</li>
<li>Static site generation (SSG)</li>
<li>API routes</li>
<li>Built-in CSS support</li>
<li>Image optimization</li>
<li>TypeScript support</li>
</ul>
<h2>Getting Started</h2>
<p>To get started with Next.js, you can create a new project using the create-next-app command:</p>
<pre><code>npx create-next-app@latest my-app</code></pre>
<p>This will create a new Next.js application with all the necessary files and dependencies.</p>
`

const sampleTailwindContent = `<h2>Why Tailwind CSS?</h2>
<p>Tailwind CSS is a utility-first CSS framework that provides low-level utility classes to build custom designs without writing custom CSS.</p>
<h2>Best Practices</h2>
<ol>
<li><strong>Use utility classes</strong> - Build designs using utility classes instead of custom CSS</li>
<li><strong>Leverage responsive design</strong> - Use responsive prefixes like sm:, md:, lg:</li>
<li><strong>Create component classes</strong> - Extract repetitive patterns into component classes</li>
<li><strong>Use the @apply directive</strong> - Apply utility classes in CSS files when needed</li>
</ol>
<h2>Example</h2>
<pre><code>&lt;div class="bg-white rounded-lg shadow-md p-6 hover:shadow-lg transition-shadow"&gt;
  &lt;h2 class="text-2xl font-bold text-gray-900 mb-4"&gt;Card Title&lt;/h2&gt;
  &lt;p class="text-gray-600"&gt;Card content goes here&lt;/p&gt;
&lt;/div&gt;</code></pre>
`

const sampleJavaScriptContent = `<h2>ES2024 Features</h2>
<p>JavaScript continues to evolve with new features that make development more efficient and enjoyable.</p>
<h2>Optional Chaining</h2>
<p>Optional chaining allows you to safely access nested object properties:</p>
<pre><code>const user = { profile: { name: 'John' } };
console.log(user?.profile?.name); // 'John'
console.log(user?.profile?.age); // undefined</code></pre>
<h2>Nullish Coalescing</h2>
<p>The nullish coalescing operator (??) provides a better way to handle default values:</p>
<pre><code>const username = user.name ?? 'Anonymous';
const count = user.count ?? 0;</code></pre>
<h2>Array Methods</h2>
<p>New array methods like findLast() and findLastIndex() make array manipulation easier:</p>
<pre><code>const numbers = [1, 2, 3, 4, 5];
const lastEven = numbers.findLast(n => n % 2 === 0); // 4</code></pre>
`
