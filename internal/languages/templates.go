package languages

import "strings"

// skeleton renders a template body, substituting every {{prompt}} marker.
// A single-pass replacer is used so prompt text is never re-expanded.
func skeleton(body string) func(prompt string) string {
	return func(prompt string) string {
		return strings.NewReplacer("{{prompt}}", prompt).Replace(body)
	}
}

const javascriptTemplate = `// {{prompt}}

// Generated JavaScript code
function solution() {
  // Implementation here
  return 'result';
}

// Usage
const result = solution();
console.log(result);`

const pythonTemplate = `# {{prompt}}

def solution():
    """
    Implementation based on: {{prompt}}
    """
    # Implementation here
    return 'result'

# Usage
if __name__ == "__main__":
    result = solution()
    print(result)`

const javaTemplate = `// {{prompt}}

public class Solution {
    public static void main(String[] args) {
        Solution solution = new Solution();
        String result = solution.solve();
        System.out.println(result);
    }
    
    public String solve() {
        // Implementation here
        return "result";
    }
}`

const cppTemplate = `// {{prompt}}

#include <iostream>
#include <string>

class Solution {
public:
    std::string solve() {
        // Implementation here
        return "result";
    }
};

int main() {
    Solution solution;
    std::string result = solution.solve();
    std::cout << result << std::endl;
    return 0;
}`

const csharpTemplate = `// {{prompt}}

using System;

class Program {
    static void Main() {
        var solution = new Solution();
        var result = solution.Solve();
        Console.WriteLine(result);
    }
}

class Solution {
    public string Solve() {
        // Implementation here
        return "result";
    }
}`

const phpTemplate = `<?php
// {{prompt}}

class Solution {
    public function solve() {
        // Implementation here
        return 'result';
    }
}

// Usage
$solution = new Solution();
$result = $solution->solve();
echo $result;
?>`

const rubyTemplate = `# {{prompt}}

class Solution
  def solve
    # Implementation here
    'result'
  end
end

# Usage
solution = Solution.new
result = solution.solve
puts result`

const goTemplate = `// {{prompt}}

package main

import "fmt"

func solution() string {
    // Implementation here
    return "result"
}

func main() {
    result := solution()
    fmt.Println(result)
}`

const rustTemplate = `// {{prompt}}

fn solution() -> String {
    // Implementation here
    String::from("result")
}

fn main() {
    let result = solution();
    println!("{}", result);
}`

const swiftTemplate = `// {{prompt}}

class Solution {
    func solve() -> String {
        // Implementation here
        return "result"
    }
}

// Usage
let solution = Solution()
let result = solution.solve()
print(result)`

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{prompt}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            line-height: 1.6;
        }
        .container {
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            border: 1px solid #ddd;
            border-radius: 5px;
        }
        h1 {
            color: #333;
        }
        button {
            background-color: #4CAF50;
            color: white;
            border: none;
            padding: 10px 15px;
            border-radius: 4px;
            cursor: pointer;
        }
        button:hover {
            background-color: #45a049;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{prompt}}</h1>
        <p>This is a sample HTML page generated for: {{prompt}}</p>
        <button onclick="alert('Button clicked!')">Click Me</button>
    </div>
    <script>
        console.log('HTML page loaded successfully');
    </script>
</body>
</html>`

const genericTemplate = `// {{prompt}}
// Generated code for {{language}}
console.log('Code generated successfully');`
